// Package domain holds the error taxonomy shared by the resolver, the
// option translator and the phase orchestrator.
package domain

import "go.trai.ch/zerr"

// Derived sentinels wrap their parent so errors.Is matches both levels.
var (
	// ErrConfiguration is returned for recipe mistakes detected before any phase runs.
	ErrConfiguration = zerr.New("configuration error")

	// ErrDuplicateDependency is returned when a dependency is declared twice without an override.
	ErrDuplicateDependency = zerr.Wrap(ErrConfiguration, "ambiguous dependency version")

	// ErrConflictingOverride is returned when two overrides pin the same dependency to different versions.
	ErrConflictingOverride = zerr.Wrap(ErrConfiguration, "conflicting dependency overrides")

	// ErrEmptyDependencyName is returned when a dependency is declared without a name.
	ErrEmptyDependencyName = zerr.Wrap(ErrConfiguration, "dependency name is empty")

	// ErrUnsupportedOptionType is returned when an option value is neither a boolean nor a string.
	ErrUnsupportedOptionType = zerr.Wrap(ErrConfiguration, "unsupported option type")

	// ErrOptionKeyCollision is returned when two option keys upper-case to the same definition.
	ErrOptionKeyCollision = zerr.Wrap(ErrConfiguration, "option keys collide after upper-casing")

	// ErrRecipeRead is returned when the recipe file cannot be read.
	ErrRecipeRead = zerr.Wrap(ErrConfiguration, "failed to read recipe")

	// ErrRecipeParse is returned when the recipe file is not valid YAML for a recipe.
	ErrRecipeParse = zerr.Wrap(ErrConfiguration, "failed to parse recipe")

	// ErrInvalidSetting is returned when a settings flag is malformed or names an unknown key.
	ErrInvalidSetting = zerr.Wrap(ErrConfiguration, "invalid setting")

	// ErrResolution is returned when the dependency resolver cannot satisfy the declared set.
	ErrResolution = zerr.New("dependency resolution failed")

	// ErrPhaseExecution is returned when configure, shader compilation, build or test fails.
	ErrPhaseExecution = zerr.New("phase execution failed")

	// ErrLockFailed is returned when the build output directory cannot be locked.
	ErrLockFailed = zerr.New("failed to lock build output directory")

	// ErrStateWrite is returned when the persisted build state cannot be written.
	ErrStateWrite = zerr.New("failed to write build state")

	// ErrStateRead is returned when the persisted build state cannot be read.
	ErrStateRead = zerr.New("failed to read build state")
)
