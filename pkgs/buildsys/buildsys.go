// Package buildsys defines the contract vkbuild has with the native build
// system. Implementations live in the cmake and meson subpackages.
package buildsys

import (
	"context"
	"os"

	"github.com/goplus/vkbuild/internal/options"
)

// BuildSystem captures the lifecycle shared by build helpers (CMake, Meson).
// Every method blocks until the tool exits. Failures are returned as
// *runner.ExitError so callers can show the tool's output.
//
//go:generate mockgen -source=buildsys.go -destination=mocks/mock_buildsys.go -package=mocks
type BuildSystem interface {
	// Use injects the resolved dependencies' toolchain into later steps.
	Use(tc Toolchain)

	// Configure generates the build tree with the given definitions.
	Configure(ctx context.Context, defs options.Definitions) error

	// Build compiles one target in an already configured tree.
	Build(ctx context.Context, target string) error

	// Test runs the test suite. With outputOnFailure the tool prints a
	// test's output only when that test fails.
	Test(ctx context.Context, outputOnFailure bool) error

	// Install copies the build products into dest.
	Install(ctx context.Context, dest string) error

	// OutputDir is the build tree the tool writes to.
	OutputDir() string

	// ProfileKey names the definition that carries the build profile.
	ProfileKey() string
}

// Toolchain is what the dependency resolver hands to the build system.
type Toolchain struct {
	// File is a CMake toolchain file or a Meson native file.
	File string
	// PkgConfigPath lists directories holding the dependencies' .pc files.
	PkgConfigPath string
}

// PrependPath returns dir followed by the current value of the
// path-list variable key, using the platform separator.
func PrependPath(key, dir string) string {
	current := os.Getenv(key)
	if current == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + current
}
