package internal

import (
	"fmt"
	"path/filepath"

	"github.com/goplus/vkbuild/internal/artifact"
	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/env"
	"github.com/goplus/vkbuild/internal/orchestrator"
	"github.com/goplus/vkbuild/internal/resolver/conan"
	"github.com/goplus/vkbuild/internal/shader"
	"github.com/goplus/vkbuild/internal/state"
	"github.com/goplus/vkbuild/pkgs/buildsys"
	"github.com/goplus/vkbuild/pkgs/buildsys/cmake"
	"github.com/goplus/vkbuild/pkgs/buildsys/meson"
	"github.com/goplus/vkbuild/recipe"
	"go.trai.ch/zerr"
)

// session is everything one command needs, resolved from the flags.
type session struct {
	recipe    *recipe.Recipe
	settings  recipe.Settings
	sourceDir string
	outputDir string
	generator string
	store     *state.Store
}

func (c *cli) newSession() (*session, error) {
	r, err := c.loadRecipe()
	if err != nil {
		return nil, err
	}

	settings := recipe.HostSettings().Merge(r.Settings)
	for _, pair := range c.opts.settings {
		if err := settings.SetPair(pair); err != nil {
			return nil, err
		}
	}

	sourceDir, err := filepath.Abs(c.opts.sourceDir)
	if err != nil {
		return nil, err
	}
	outputDir := c.opts.outputDir
	if outputDir == "" {
		outputDir = filepath.Join(sourceDir, "build")
	}
	if outputDir, err = filepath.Abs(outputDir); err != nil {
		return nil, err
	}

	generator := c.opts.generator
	if generator == "" {
		generator = r.Generator
	}
	if generator == "" {
		generator = recipe.GeneratorMeson
	}
	if generator != recipe.GeneratorMeson && generator != recipe.GeneratorCMake {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, fmt.Sprintf("unknown generator %q", generator)), "generator", generator)
	}

	return &session{
		recipe:    r,
		settings:  settings,
		sourceDir: sourceDir,
		outputDir: outputDir,
		generator: generator,
		store:     state.NewStore(outputDir),
	}, nil
}

// profile is the build profile of this session, the same value the
// orchestrator hands to Configure.
func (s *session) profile() string {
	if s.settings.BuildType != "" {
		return s.settings.BuildType
	}
	return env.BuildType()
}

// loadRecipe reads --recipe, or the built-in recipe, and applies -o flags.
func (c *cli) loadRecipe() (*recipe.Recipe, error) {
	var (
		r   *recipe.Recipe
		err error
	)
	if c.opts.recipeFile != "" {
		if r, err = recipe.Parse(c.opts.recipeFile, nil); err != nil {
			return nil, err
		}
	} else {
		r = recipe.Default()
	}
	for _, pair := range c.opts.options {
		if err := r.SetOption(pair); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (c *cli) buildSystem(s *session) buildsys.BuildSystem {
	if s.generator == recipe.GeneratorCMake {
		return cmake.New(s.sourceDir, s.outputDir).BuildType(s.profile()).WithRunner(c.runner)
	}
	return meson.New(s.sourceDir, s.outputDir).WithRunner(c.runner)
}

func (c *cli) orchestrator(s *session) (*orchestrator.Orchestrator, error) {
	cfg := orchestrator.Config{
		Recipe:      s.recipe,
		Settings:    s.settings,
		BuildSystem: c.buildSystem(s),
		Resolver:    conan.New(s.outputDir, s.generator).WithRunner(c.runner),
		Artifacts:   artifact.Placer{Platform: s.settings.Platform()},
		State:       s.store,
		LockPath:    filepath.Join(s.outputDir, state.LockName),
	}
	if s.recipe.Shaders.Enabled() {
		cfg.Shaders = shader.New(s.sourceDir, s.recipe.Shaders).WithRunner(c.runner)
	}
	return orchestrator.New(cfg)
}
