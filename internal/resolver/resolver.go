// Package resolver defines how vkbuild asks a package manager to fetch
// the declared dependencies and what it gets back.
package resolver

import (
	"context"

	"github.com/goplus/vkbuild/internal/deps"
	"github.com/goplus/vkbuild/pkgs/buildsys"
	"github.com/goplus/vkbuild/pkgs/mod/module"
	"github.com/goplus/vkbuild/recipe"
)

// Resolver fetches (or builds) the resolved dependency set for settings.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	Resolve(ctx context.Context, specs []deps.Spec, settings recipe.Settings) (*Resolution, error)
}

// Package is one installed dependency.
type Package struct {
	module.Version
	// Folder is the package's install root; it holds bin, lib and include.
	Folder string `json:"folder"`
}

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	// GeneratorsDir holds the generated toolchain and pkg-config files.
	GeneratorsDir string
	Toolchain     buildsys.Toolchain
	// Packages is ordered like the specs passed to Resolve.
	Packages []Package
}

// Roots returns the package folders, skipping packages without one.
func (r *Resolution) Roots() []string {
	if r == nil {
		return nil
	}
	roots := make([]string, 0, len(r.Packages))
	for _, p := range r.Packages {
		if p.Folder != "" {
			roots = append(roots, p.Folder)
		}
	}
	return roots
}

// Modules returns the resolved versions.
func (r *Resolution) Modules() []module.Version {
	if r == nil {
		return nil
	}
	mods := make([]module.Version, len(r.Packages))
	for i, p := range r.Packages {
		mods[i] = p.Version
	}
	return mods
}
