// Package conan resolves dependencies with the conan 2 package manager.
//
// The declared set is rendered into a generated conanfile.py (overrides
// keep conan's override semantics), then `conan install` fetches or
// builds every package and writes the pkg-config files and the toolchain
// for the selected build system.
package conan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/goplus/vkbuild/internal/deps"
	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/internal/resolver"
	"github.com/goplus/vkbuild/internal/runner"
	"github.com/goplus/vkbuild/pkgs/buildsys"
	"github.com/goplus/vkbuild/pkgs/mod/module"
	"github.com/goplus/vkbuild/recipe"
	"go.trai.ch/zerr"
)

// Folder is the directory, under the output directory, conan works in.
const Folder = "conan"

var conanfileTmpl = template.Must(template.New("conanfile.py").Parse(`# Generated by vkbuild. DO NOT EDIT.
from conan import ConanFile


class VkbuildDeps(ConanFile):
    settings = "os", "compiler", "build_type", "arch"
    generators = "PkgConfigDeps", "{{.Toolchain}}"

    def requirements(self):
{{- range .Specs}}
        self.requires("{{.Name}}/{{.Version}}"{{if .Override}}, override=True{{end}})
{{- else}}
        pass
{{- end}}
`))

// Conan runs `conan install` in <OutputDir>/conan.
type Conan struct {
	OutputDir string
	// Generator is recipe.GeneratorMeson or recipe.GeneratorCMake.
	Generator string
	// Bin is the conan executable, "conan" by default.
	Bin    string
	runner runner.Runner
}

var _ resolver.Resolver = (*Conan)(nil)

func New(outputDir, generator string) *Conan {
	return &Conan{OutputDir: outputDir, Generator: generator, Bin: "conan", runner: runner.Default}
}

// WithRunner replaces the process runner, mainly for tests.
func (c *Conan) WithRunner(r runner.Runner) *Conan {
	c.runner = r
	return c
}

// Dir returns the folder holding the conanfile and the generated files.
func (c *Conan) Dir() string {
	return filepath.Join(c.OutputDir, Folder)
}

// Resolve implements resolver.Resolver.
func (c *Conan) Resolve(ctx context.Context, specs []deps.Spec, settings recipe.Settings) (*resolver.Resolution, error) {
	logger := logging.FromContext(ctx)
	dir := c.Dir()

	if err := c.writeConanfile(dir, specs); err != nil {
		return nil, errors.Join(domain.ErrResolution, zerr.With(zerr.Wrap(err, "write conanfile"), "dir", dir))
	}

	args := []string{"install", dir, "--output-folder", dir, "--build=missing", "--format=json"}
	args = append(args, settingsArgs(settings)...)

	logger.Info("resolving dependencies", "count", len(specs), "settings", settings.Combination())
	var stdout bytes.Buffer
	err := c.runner.Run(ctx, runner.Cmd{Bin: c.bin(), Args: args, Dir: dir, Stdout: &stdout})
	if err != nil {
		return nil, errors.Join(domain.ErrResolution, zerr.Wrap(err, "conan install"))
	}

	packages, err := parseGraph(stdout.Bytes(), specs)
	if err != nil {
		return nil, errors.Join(domain.ErrResolution, zerr.Wrap(err, "read conan graph"))
	}
	return &resolver.Resolution{
		GeneratorsDir: dir,
		Toolchain: buildsys.Toolchain{
			File:          filepath.Join(dir, c.toolchainFile()),
			PkgConfigPath: dir,
		},
		Packages: packages,
	}, nil
}

func (c *Conan) bin() string {
	if c.Bin == "" {
		return "conan"
	}
	return c.Bin
}

func (c *Conan) toolchainGenerator() string {
	if c.Generator == recipe.GeneratorCMake {
		return "CMakeToolchain"
	}
	return "MesonToolchain"
}

func (c *Conan) toolchainFile() string {
	if c.Generator == recipe.GeneratorCMake {
		return "conan_toolchain.cmake"
	}
	return "conan_meson_native.ini"
}

func (c *Conan) writeConanfile(dir string, specs []deps.Spec) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	err := conanfileTmpl.Execute(&buf, struct {
		Toolchain string
		Specs     []deps.Spec
	}{c.toolchainGenerator(), specs})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "conanfile.py"), buf.Bytes(), 0o644)
}

// settingsArgs renders settings as sorted -s key=value pairs.
func settingsArgs(s recipe.Settings) []string {
	m := s.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	args := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, "-s", k+"="+m[k])
	}
	return args
}

// graph is the part of `conan install --format=json` vkbuild reads.
type graph struct {
	Graph struct {
		Nodes map[string]struct {
			Ref           string `json:"ref"`
			Context       string `json:"context"`
			PackageFolder string `json:"package_folder"`
		} `json:"nodes"`
	} `json:"graph"`
}

// parseGraph lists the host packages of the install graph. Declared
// dependencies come first, in declaration order, then transitive ones
// sorted by name.
func parseGraph(data []byte, specs []deps.Spec) ([]resolver.Package, error) {
	var g graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}

	byName := make(map[string]resolver.Package)
	for _, node := range g.Graph.Nodes {
		if node.Context == "build" || node.Ref == "" || node.Ref == "conanfile" {
			continue
		}
		mod, err := parseRef(node.Ref)
		if err != nil {
			return nil, err
		}
		byName[mod.Path] = resolver.Package{Version: mod, Folder: node.PackageFolder}
	}

	packages := make([]resolver.Package, 0, len(byName))
	for _, spec := range specs {
		if p, ok := byName[spec.Name]; ok {
			packages = append(packages, p)
			delete(byName, spec.Name)
		}
	}
	rest := make([]string, 0, len(byName))
	for name := range byName {
		rest = append(rest, name)
	}
	slices.Sort(rest)
	for _, name := range rest {
		packages = append(packages, byName[name])
	}
	return packages, nil
}

// parseRef turns "name/version[@user/channel][#revision]" into a module.Version.
func parseRef(ref string) (module.Version, error) {
	ref, _, _ = strings.Cut(ref, "#")
	ref, _, _ = strings.Cut(ref, "@")
	name, version, ok := strings.Cut(ref, "/")
	if !ok || name == "" || version == "" {
		return module.Version{}, fmt.Errorf("malformed reference %q", ref)
	}
	return module.Version{Path: name, Version: version}, nil
}
