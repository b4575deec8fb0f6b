// Package orchestrator sequences one vkbuild invocation: dependency
// resolution, configure, shader compilation, build, test and install.
//
// Phases run in that fixed order, each at most once, and the first
// failure ends the invocation.
package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/goplus/vkbuild/internal/deps"
	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/env"
	"github.com/goplus/vkbuild/internal/lockedfile"
	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/internal/options"
	"github.com/goplus/vkbuild/internal/resolver"
	"github.com/goplus/vkbuild/internal/state"
	"github.com/goplus/vkbuild/pkgs/buildsys"
	"github.com/goplus/vkbuild/recipe"
	"go.trai.ch/zerr"
)

// Config wires an Orchestrator to its collaborators. Recipe, BuildSystem
// and Resolver are required; a nil Shaders, Artifacts or State skips that
// step.
type Config struct {
	Recipe      *recipe.Recipe
	Settings    recipe.Settings
	BuildSystem buildsys.BuildSystem
	Resolver    resolver.Resolver
	Shaders     ShaderCompiler
	Artifacts   ArtifactPlacer
	State       StateStore
	// LockPath is the advisory lock held during Run and Install. Empty
	// disables locking.
	LockPath string
	// Now stamps the persisted state; time.Now when nil.
	Now func() time.Time
}

// Orchestrator runs invocations against one build output directory.
type Orchestrator struct {
	cfg Config
}

// Report describes a finished (or aborted) invocation.
type Report struct {
	// Phases lists the phases that completed, in order.
	Phases []Phase
	// InstallFlags are the flags as the install phase saw them.
	InstallFlags Flags
	Resolution   *resolver.Resolution
	// Artifacts are the runtime libraries copied after the build.
	Artifacts []string
}

// New validates cfg and returns an Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	switch {
	case cfg.Recipe == nil:
		return nil, zerr.Wrap(domain.ErrConfiguration, "orchestrator needs a recipe")
	case cfg.BuildSystem == nil:
		return nil, zerr.Wrap(domain.ErrConfiguration, "orchestrator needs a build system")
	case cfg.Resolver == nil:
		return nil, zerr.Wrap(domain.ErrConfiguration, "orchestrator needs a dependency resolver")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{cfg: cfg}, nil
}

// OutputDir is where the build tree lives and where install writes.
func (o *Orchestrator) OutputDir() string {
	return o.cfg.BuildSystem.OutputDir()
}

// Profile returns the build profile passed to the build system verbatim.
func (o *Orchestrator) Profile() string {
	if o.cfg.Settings.BuildType != "" {
		return o.cfg.Settings.BuildType
	}
	return env.BuildType()
}

// Definitions translates the recipe options and adds the profile.
func (o *Orchestrator) Definitions() (options.Definitions, error) {
	defs, err := options.Translate(o.cfg.Recipe.Options)
	if err != nil {
		return nil, err
	}
	return options.WithProfile(defs, o.cfg.BuildSystem.ProfileKey(), o.Profile()), nil
}

// validate checks every declaration and option. It runs before any
// phase, whichever phases are requested.
func (o *Orchestrator) validate() (*deps.Set, options.Definitions, error) {
	set, err := o.cfg.Recipe.Dependencies()
	if err != nil {
		return nil, nil, err
	}
	defs, err := o.Definitions()
	if err != nil {
		return nil, nil, err
	}
	return set, defs, nil
}

// invocation is the state of a single Run.
type invocation struct {
	o          *Orchestrator
	report     *Report
	resolution *resolver.Resolution
	shadersRan bool
	placed     bool
}

// Run executes the requested phases. The returned Report is never nil.
func (o *Orchestrator) Run(ctx context.Context, flags Flags) (*Report, error) {
	logger := logging.FromContext(ctx)
	report := &Report{}
	if !flags.Any() {
		logger.Info("no phase requested")
		return report, nil
	}

	set, defs, err := o.validate()
	if err != nil {
		return report, err
	}

	unlock, err := o.lock(ctx)
	if err != nil {
		return report, err
	}
	defer unlock()

	inv := &invocation{o: o, report: report}
	logger.Debug("starting invocation", "phases", flags.String(), "output", o.OutputDir())

	if flags.Configure {
		if err := inv.configure(ctx, set, defs); err != nil {
			return report, err
		}
	}
	if flags.Build {
		if err := inv.build(ctx, flags, o.cfg.Recipe.Targets.Primary); err != nil {
			return report, err
		}
		inv.done(PhaseBuild)
	}
	if flags.Test {
		if err := inv.test(ctx, flags); err != nil {
			return report, err
		}
	}
	if flags.Install {
		report.InstallFlags = flags
		if err := o.install(ctx); err != nil {
			return report, err
		}
		inv.done(PhaseInstall)
	}
	return report, nil
}

// Install runs the install phase alone.
func (o *Orchestrator) Install(ctx context.Context) error {
	if _, _, err := o.validate(); err != nil {
		return err
	}
	unlock, err := o.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	return o.install(ctx)
}

func (o *Orchestrator) install(ctx context.Context) error {
	dest := o.OutputDir()
	logging.FromContext(ctx).Info("installing", "dest", dest)
	if err := o.cfg.BuildSystem.Install(ctx, dest); err != nil {
		return &PhaseError{Phase: PhaseInstall, Err: err}
	}
	return nil
}

func (o *Orchestrator) lock(ctx context.Context) (func(), error) {
	if o.cfg.LockPath == "" {
		return func() {}, nil
	}
	mu := lockedfile.MutexAt(o.cfg.LockPath)
	unlock, ok, err := mu.TryLock()
	if err == nil && !ok {
		logging.FromContext(ctx).Info("waiting for another vkbuild run", "lock", o.cfg.LockPath)
		unlock, err = mu.Lock()
	}
	if err != nil {
		return nil, errors.Join(domain.ErrLockFailed, err)
	}
	return unlock, nil
}

func (inv *invocation) done(p Phase) {
	inv.report.Phases = append(inv.report.Phases, p)
}

// configure resolves dependencies and configures the build tree with
// the already validated declarations and definitions.
func (inv *invocation) configure(ctx context.Context, set *deps.Set, defs options.Definitions) error {
	o := inv.o
	logger := logging.FromContext(ctx)

	specs := set.ResolveAll(ctx)

	logger.Info("resolving dependencies", "count", len(specs))
	res, err := o.cfg.Resolver.Resolve(ctx, specs, o.cfg.Settings)
	if err != nil {
		if !errors.Is(err, domain.ErrResolution) {
			err = errors.Join(domain.ErrResolution, err)
		}
		return err
	}
	if res == nil {
		res = &resolver.Resolution{}
	}
	inv.resolution = res
	inv.report.Resolution = res
	inv.done(PhaseResolve)

	o.cfg.BuildSystem.Use(res.Toolchain)
	logger.Info("configuring", "profile", o.Profile(), "definitions", len(defs))
	if err := o.cfg.BuildSystem.Configure(ctx, defs); err != nil {
		return &PhaseError{Phase: PhaseConfigure, Err: err}
	}
	inv.done(PhaseConfigure)

	if o.cfg.State != nil {
		st := state.New(o.cfg.Settings, deps.Modules(specs), defs, o.cfg.Now())
		st.Packages = res.Packages
		if err := o.cfg.State.Save(st); err != nil {
			logger.Warn("could not record build state", "error", err)
		}
	}
	return nil
}

// build compiles targets when flags.Build is set. The shader step runs
// before the first target of the invocation and never again; runtime
// artifacts are placed once, after the first successful build.
func (inv *invocation) build(ctx context.Context, flags Flags, targets ...string) error {
	if !flags.Build {
		return nil
	}
	o := inv.o
	logger := logging.FromContext(ctx)

	if !inv.shadersRan && o.cfg.Shaders != nil {
		logger.Info("running shader step")
		if err := o.cfg.Shaders.Compile(ctx); err != nil {
			return &PhaseError{Phase: PhaseShaders, Err: err}
		}
		inv.shadersRan = true
		inv.done(PhaseShaders)
	}

	for _, target := range targets {
		logger.Info("building", "target", target)
		if err := o.cfg.BuildSystem.Build(ctx, target); err != nil {
			return zerr.With(&PhaseError{Phase: PhaseBuild, Err: err}, "target", target)
		}
	}

	if !inv.placed {
		inv.placed = true
		inv.placeArtifacts(ctx)
	}
	return nil
}

// test rebuilds the primary and test targets on a copy of flags with
// Build forced on, then runs the tests. The caller's flags are untouched.
func (inv *invocation) test(ctx context.Context, flags Flags) error {
	o := inv.o
	flags.Build = true
	if err := inv.build(ctx, flags, o.cfg.Recipe.Targets.Primary, o.cfg.Recipe.Targets.Test); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("testing")
	if err := o.cfg.BuildSystem.Test(ctx, true); err != nil {
		return &PhaseError{Phase: PhaseTest, Err: err}
	}
	inv.done(PhaseTest)
	return nil
}

// placeArtifacts copies runtime libraries of the resolved packages into
// the runtime directory. Failures are logged, never returned.
func (inv *invocation) placeArtifacts(ctx context.Context) {
	o := inv.o
	if o.cfg.Artifacts == nil {
		return
	}
	logger := logging.FromContext(ctx)

	roots := inv.resolution.Roots()
	if inv.resolution == nil && o.cfg.State != nil {
		// Not resolved in this invocation: use the last configure's packages.
		if st, err := o.cfg.State.Load(); err == nil {
			roots = (&resolver.Resolution{Packages: st.Packages}).Roots()
		} else if !state.IsNotExist(err) {
			logger.Warn("could not read build state", "error", err)
		}
	}

	dst := filepath.Join(o.OutputDir(), o.cfg.Recipe.RuntimeDir)
	placed, err := o.cfg.Artifacts.Place(ctx, roots, dst)
	if err != nil {
		logger.Warn("copying runtime artifacts failed", "error", err)
	}
	inv.report.Artifacts = placed
}
