// Package deps holds the dependency declarations of a recipe and resolves
// them, with override semantics, into the set handed to the package manager.
package deps

import (
	"context"
	"fmt"

	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/pkgs/mod/module"
	"go.trai.ch/zerr"
)

// Spec is a single dependency declaration.
type Spec struct {
	Name     string
	Version  string
	Override bool
}

// Module returns the spec as a module.Version.
func (s Spec) Module() module.Version {
	return module.Version{Path: s.Name, Version: s.Version}
}

func (s Spec) String() string {
	if s.Override {
		return s.Module().String() + " (override)"
	}
	return s.Module().String()
}

type entry struct {
	base     *Spec // plain declaration, if any
	override *Spec // first override, if any
}

// Set collects declarations in order. The zero value is ready to use.
//
// A name may be declared plainly at most once. An override replaces the
// plain declaration wherever it appears in the list. When several
// overrides name the same library the first one wins; a later override
// with a different version is an error.
type Set struct {
	// Compare orders versions when checking overrides for downgrades.
	// CompareVersions is used when nil.
	Compare module.VersionComparator

	order    []string
	entries  map[string]*entry
	declared []Spec
}

// NewSet returns a Set populated from specs in order.
func NewSet(specs ...Spec) (*Set, error) {
	s := &Set{}
	for _, spec := range specs {
		if err := s.Declare(spec.Name, spec.Version, spec.Override); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Declare registers name@version, or forces that version when override is set.
func (s *Set) Declare(name, version string, override bool) error {
	if name == "" {
		return zerr.With(zerr.Wrap(domain.ErrEmptyDependencyName, "declare"), "version", version)
	}
	if s.entries == nil {
		s.entries = make(map[string]*entry)
	}
	spec := &Spec{Name: name, Version: version, Override: override}

	e, ok := s.entries[name]
	if !ok {
		e = &entry{}
		s.entries[name] = e
		s.order = append(s.order, name)
	}
	switch {
	case !override && e.base != nil:
		err := zerr.Wrap(domain.ErrDuplicateDependency,
			fmt.Sprintf("%s declared as %s and %s without an override", name, e.base.Version, version))
		return zerr.With(zerr.With(err, "dependency", name), "versions", []string{e.base.Version, version})
	case !override:
		e.base = spec
	case e.override == nil:
		e.override = spec
	case e.override.Version != version:
		err := zerr.Wrap(domain.ErrConflictingOverride,
			fmt.Sprintf("%s forced to %s and %s", name, e.override.Version, version))
		return zerr.With(err, "dependency", name)
	default:
		// same override again
		return nil
	}
	s.declared = append(s.declared, *spec)
	return nil
}

// Declared returns every accepted declaration in the order it was made.
func (s *Set) Declared() []Spec {
	out := make([]Spec, len(s.declared))
	copy(out, s.declared)
	return out
}

// Len returns the number of distinct dependency names.
func (s *Set) Len() int { return len(s.order) }

// ResolveAll returns one effective spec per name, ordered by the name's
// first declaration. The effective version is the override's when there is
// one; such specs keep Override set so the package manager can force it
// across the whole graph.
func (s *Set) ResolveAll(ctx context.Context) []Spec {
	logger := logging.FromContext(ctx)
	compare := s.Compare
	if compare == nil {
		compare = CompareVersions
	}

	out := make([]Spec, 0, len(s.order))
	for _, name := range s.order {
		e := s.entries[name]
		if e.override == nil {
			out = append(out, *e.base)
			continue
		}
		if e.base != nil && e.base.Version != e.override.Version {
			if compare(e.override.Version, e.base.Version) < 0 {
				logger.Warn("override downgrades dependency",
					"dependency", name, "declared", e.base.Version, "forced", e.override.Version)
			} else {
				logger.Debug("override replaces dependency version",
					"dependency", name, "declared", e.base.Version, "forced", e.override.Version)
			}
		}
		out = append(out, *e.override)
	}
	return out
}

// Modules strips the override flag from specs.
func Modules(specs []Spec) []module.Version {
	mods := make([]module.Version, len(specs))
	for i, spec := range specs {
		mods[i] = spec.Module()
	}
	return mods
}
