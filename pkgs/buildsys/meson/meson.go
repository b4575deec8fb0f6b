// Package meson drives the Meson setup/compile/test/install workflow.
package meson

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/goplus/vkbuild/internal/options"
	"github.com/goplus/vkbuild/internal/runner"
	"github.com/goplus/vkbuild/pkgs/buildsys"
)

// ProfileKey is the built-in option carrying the build profile.
const ProfileKey = "buildtype"

// buildTypes maps CMake/conan build_type names onto meson's buildtype
// values, as conan's MesonToolchain does.
var buildTypes = map[string]string{
	"Debug":          "debug",
	"Release":        "release",
	"RelWithDebInfo": "debugoptimized",
	"MinSizeRel":     "minsize",
}

// BuildType returns the meson buildtype for profile. Values meson already
// understands pass through unchanged.
func BuildType(profile string) string {
	if bt, ok := buildTypes[profile]; ok {
		return bt
	}
	return profile
}

// Meson wraps the meson command line. The build directory doubles as the
// install prefix, so `meson install` lands next to the build products.
type Meson struct {
	SourceDir  string
	buildDir   string
	nativeFile string
	defines    map[string]string
	env        map[string]string
	runner     runner.Runner
}

var _ buildsys.BuildSystem = (*Meson)(nil)

// New creates a Meson helper building sourceDir into buildDir.
func New(sourceDir, buildDir string) *Meson {
	if buildDir == "" {
		buildDir = filepath.Join(sourceDir, "build")
	}
	return &Meson{
		SourceDir: sourceDir,
		buildDir:  buildDir,
		defines:   map[string]string{},
		env:       map[string]string{},
		runner:    runner.Default,
	}
}

// WithRunner replaces the process runner, mainly for tests.
func (m *Meson) WithRunner(r runner.Runner) *Meson {
	m.runner = r
	return m
}

// Define adds a -Dkey=value project or built-in option.
func (m *Meson) Define(key, value string) *Meson {
	if m.defines == nil {
		m.defines = map[string]string{}
	}
	m.defines[key] = value
	return m
}

func (m *Meson) Env(key, value string) {
	if m.env == nil {
		m.env = map[string]string{}
	}
	m.env[key] = value
}

// Use passes the conan generated native file and pkg-config directory.
func (m *Meson) Use(tc buildsys.Toolchain) {
	if tc.File != "" {
		m.nativeFile = tc.File
	}
	if tc.PkgConfigPath != "" {
		m.Env("PKG_CONFIG_PATH", buildsys.PrependPath("PKG_CONFIG_PATH", tc.PkgConfigPath))
		m.Define("pkg_config_path", tc.PkgConfigPath)
	}
}

func (m *Meson) ProfileKey() string { return ProfileKey }

// Configure runs meson setup. An existing build tree is reconfigured in
// place rather than rejected.
func (m *Meson) Configure(ctx context.Context, defs options.Definitions) error {
	if err := os.MkdirAll(m.buildDir, 0o755); err != nil {
		return err
	}
	prefix, err := filepath.Abs(m.buildDir)
	if err != nil {
		return err
	}
	for k, v := range defs {
		if k == ProfileKey {
			v = BuildType(v)
		}
		m.Define(k, v)
	}

	args := []string{"setup", m.buildDir, m.SourceDir, "--prefix", prefix}
	args = append(args, m.definesArgs()...)
	if m.nativeFile != "" {
		args = append(args, "--native-file", m.nativeFile)
	}
	if _, err := os.Stat(filepath.Join(m.buildDir, "meson-private")); err == nil {
		args = append(args, "--reconfigure")
	}
	return m.run(ctx, args)
}

func (m *Meson) Build(ctx context.Context, target string) error {
	args := []string{"compile", "-C", m.buildDir}
	if target != "" {
		args = append(args, target)
	}
	return m.run(ctx, args)
}

func (m *Meson) Test(ctx context.Context, outputOnFailure bool) error {
	args := []string{"test", "-C", m.buildDir}
	if outputOnFailure {
		args = append(args, "--print-errorlogs")
	}
	return m.run(ctx, args)
}

// Install runs meson install. Files go to the configured prefix, which is
// the build directory; dest only matters when it is somewhere else, in
// which case it is used as DESTDIR.
func (m *Meson) Install(ctx context.Context, dest string) error {
	args := []string{"install", "-C", m.buildDir}
	if dest != "" && !samePath(dest, m.buildDir) {
		args = append(args, "--destdir", dest)
	}
	return m.run(ctx, args)
}

// OutputDir returns the build tree.
func (m *Meson) OutputDir() string {
	return m.buildDir
}

func (m *Meson) definesArgs() []string {
	keys := make([]string, 0, len(m.defines))
	for k := range m.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, "-D"+k+"="+m.defines[k])
	}
	return args
}

func (m *Meson) run(ctx context.Context, args []string) error {
	return m.runner.Run(ctx, runner.Cmd{Bin: "meson", Args: args, Env: m.env})
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
