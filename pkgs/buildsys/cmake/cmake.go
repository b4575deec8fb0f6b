// Package cmake drives the CMake configure/build/test/install workflow.
package cmake

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/goplus/vkbuild/internal/options"
	"github.com/goplus/vkbuild/internal/runner"
	"github.com/goplus/vkbuild/pkgs/buildsys"
)

// ProfileKey is the cache variable carrying the build profile.
const ProfileKey = "CMAKE_BUILD_TYPE"

type defineValue struct {
	value    string
	typeName string
}

// CMake wraps common CMake build steps with chainable configuration.
type CMake struct {
	SourceDir string
	buildDir  string
	generator string
	buildType string
	toolchain string
	Defines   map[string]defineValue
	env       map[string]string
	runner    runner.Runner
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New creates a CMake helper building sourceDir into buildDir.
func New(sourceDir, buildDir string) *CMake {
	if buildDir == "" {
		buildDir = filepath.Join(sourceDir, "build")
	}
	return &CMake{
		SourceDir: sourceDir,
		buildDir:  buildDir,
		Defines:   map[string]defineValue{},
		env:       map[string]string{},
		runner:    runner.Default,
	}
}

// WithRunner replaces the process runner, mainly for tests.
func (c *CMake) WithRunner(r runner.Runner) *CMake {
	c.runner = r
	return c
}

func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

// BuildType sets the configuration used by build, test and install on
// multi-config generators when Configure has not run in this process.
// A profile passed to Configure replaces it.
func (c *CMake) BuildType(bt string) *CMake {
	c.buildType = bt
	return c
}

func (c *CMake) Toolchain(path string) *CMake {
	c.toolchain = path
	return c
}

func (c *CMake) Define(key, value string) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	c.Defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

func (c *CMake) DefineBool(key string, value bool) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	if value {
		c.Defines[key] = defineValue{value: "ON", typeName: "BOOL"}
		return c
	}
	c.Defines[key] = defineValue{value: "OFF", typeName: "BOOL"}
	return c
}

func (c *CMake) Env(key, value string) {
	if c.env == nil {
		c.env = map[string]string{}
	}
	c.env[key] = value
}

// Use points CMake at the conan generated toolchain and pkg-config files.
func (c *CMake) Use(tc buildsys.Toolchain) {
	if tc.File != "" {
		c.toolchain = tc.File
	}
	if tc.PkgConfigPath != "" {
		c.Env("PKG_CONFIG_PATH", buildsys.PrependPath("PKG_CONFIG_PATH", tc.PkgConfigPath))
	}
}

func (c *CMake) ProfileKey() string { return ProfileKey }

// Configure runs cmake -S <src> -B <build> with defs rendered as untyped
// -D definitions. The build profile in defs is also used as the
// configuration for multi-config generators in later steps.
func (c *CMake) Configure(ctx context.Context, defs options.Definitions) error {
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return err
	}
	if bt, ok := defs[ProfileKey]; ok {
		c.buildType = bt
	}
	for k, v := range defs {
		c.Defines[k] = defineValue{value: v}
	}
	if c.toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.toolchain)
	}

	args := []string{"-S", c.SourceDir, "-B", c.buildDir}
	if c.generator != "" {
		args = append(args, "-G", c.generator)
	}
	args = append(args, c.definesArgs()...)
	return c.run(ctx, "cmake", args)
}

func (c *CMake) Build(ctx context.Context, target string) error {
	args := []string{"--build", c.buildDir}
	if target != "" {
		args = append(args, "--target", target)
	}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	return c.run(ctx, "cmake", args)
}

func (c *CMake) Test(ctx context.Context, outputOnFailure bool) error {
	args := []string{"--test-dir", c.buildDir}
	if c.buildType != "" {
		args = append(args, "-C", c.buildType)
	}
	if outputOnFailure {
		args = append(args, "--output-on-failure")
	}
	return c.run(ctx, "ctest", args)
}

func (c *CMake) Install(ctx context.Context, dest string) error {
	args := []string{"--install", c.buildDir, "--prefix", dest}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	return c.run(ctx, "cmake", args)
}

// OutputDir returns the build tree.
func (c *CMake) OutputDir() string {
	return c.buildDir
}

func (c *CMake) definesArgs() []string {
	if len(c.Defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Defines))
	for k := range c.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := c.Defines[k]
		if def.typeName != "" {
			args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
			continue
		}
		args = append(args, "-D"+k+"="+def.value)
	}
	return args
}

func (c *CMake) run(ctx context.Context, bin string, args []string) error {
	return c.runner.Run(ctx, runner.Cmd{Bin: bin, Args: args, Env: c.env})
}
