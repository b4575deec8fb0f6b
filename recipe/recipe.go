// Package recipe describes what vkbuild builds: the pinned third-party
// libraries, the build options, the targets, the shader step and where
// runtime artifacts go. A recipe is data; the orchestration lives in
// internal/orchestrator.
package recipe

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/goplus/vkbuild/internal/deps"
	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/options"
	"github.com/goplus/vkbuild/pkgs/mod/module"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRecipe []byte

// Generators understood by vkbuild.
const (
	GeneratorMeson = "meson"
	GeneratorCMake = "cmake"
)

// Recipe is the declarative build description.
type Recipe struct {
	Name      string                   `yaml:"name"`
	Requires  []string                 `yaml:"requires"`
	Overrides []string                 `yaml:"overrides"`
	Generator string                   `yaml:"generator"`
	Settings  Settings                 `yaml:"settings"`
	Options   map[string]options.Value `yaml:"options"`
	Targets   Targets                  `yaml:"targets"`
	Shaders   Shaders                  `yaml:"shaders"`
	// RuntimeDir is where shared libraries are placed, relative to the
	// build output directory.
	RuntimeDir string `yaml:"runtime_dir"`
}

// Targets names the primary library target and its unit-test target.
type Targets struct {
	Primary string `yaml:"primary"`
	Test    string `yaml:"test"`
}

// Shaders configures the out-of-band shader compilation step.
type Shaders struct {
	// Dir is the working directory, relative to the source directory.
	Dir            string   `yaml:"dir"`
	Command        []string `yaml:"command"`
	WindowsCommand []string `yaml:"windows_command"`
}

// CommandFor returns the command to run on goos.
func (s Shaders) CommandFor(goos string) []string {
	if goos == "windows" && len(s.WindowsCommand) > 0 {
		return s.WindowsCommand
	}
	return s.Command
}

// Enabled reports whether a shader command is configured for the host.
func (s Shaders) Enabled() bool {
	return len(s.CommandFor(runtime.GOOS)) > 0
}

// Parse reads a recipe from data, or from file when data is nil.
func Parse(file string, data []byte) (*Recipe, error) {
	var reader io.Reader
	if data != nil {
		reader = bytes.NewReader(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrRecipeRead, err.Error()), "path", file)
		}
		defer f.Close()
		reader = f
	}

	var r Recipe
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		err = zerr.Wrap(domain.ErrRecipeParse, err.Error())
		return nil, zerr.With(err, "path", file)
	}
	if err := r.Validate(); err != nil {
		return nil, zerr.With(err, "path", file)
	}
	return &r, nil
}

// Default returns the built-in recipe.
func Default() *Recipe {
	r, err := Parse("default.yaml", defaultRecipe)
	if err != nil {
		panic(fmt.Sprintf("recipe: built-in recipe is invalid: %v", err))
	}
	return r
}

// Validate checks the fields the orchestrator relies on.
func (r *Recipe) Validate() error {
	switch r.Generator {
	case "", GeneratorMeson, GeneratorCMake:
	default:
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, fmt.Sprintf("unknown generator %q", r.Generator)), "generator", r.Generator)
	}
	if r.Targets.Primary == "" {
		return zerr.Wrap(domain.ErrConfiguration, "targets.primary is required")
	}
	if r.Targets.Test == "" {
		return zerr.Wrap(domain.ErrConfiguration, "targets.test is required")
	}
	for _, ref := range append(append([]string(nil), r.Requires...), r.Overrides...) {
		if _, err := module.Parse(ref); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, err.Error()), "reference", ref)
		}
	}
	return nil
}

// Specs lists the dependency declarations: requires in order, then overrides.
func (r *Recipe) Specs() ([]deps.Spec, error) {
	specs := make([]deps.Spec, 0, len(r.Requires)+len(r.Overrides))
	add := func(ref string, override bool) error {
		mod, err := module.Parse(ref)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, err.Error()), "reference", ref)
		}
		specs = append(specs, deps.Spec{Name: mod.Path, Version: mod.Version, Override: override})
		return nil
	}
	for _, ref := range r.Requires {
		if err := add(ref, false); err != nil {
			return nil, err
		}
	}
	for _, ref := range r.Overrides {
		if err := add(ref, true); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

// Dependencies builds the declaration set of the recipe. Duplicate or
// conflicting declarations fail here, before any phase runs.
func (r *Recipe) Dependencies() (*deps.Set, error) {
	specs, err := r.Specs()
	if err != nil {
		return nil, err
	}
	return deps.NewSet(specs...)
}

// SetOption assigns a "key=value" option, overriding the recipe's value.
func (r *Recipe) SetOption(pair string) error {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, fmt.Sprintf("want key=value, got %q", pair)), "option", pair)
	}
	if r.Options == nil {
		r.Options = make(map[string]options.Value)
	}
	r.Options[key] = options.ParseValue(value)
	return nil
}
