// Package options turns recipe options into build-system definitions.
package options

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goplus/vkbuild/internal/domain"
	"go.trai.ch/zerr"
)

// Definitions maps build-system definition names to their values.
type Definitions map[string]string

// Keys returns the definition names in sorted order.
func (d Definitions) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Translate converts options into definitions. Keys are upper-cased;
// booleans become "1" or "0" and strings are upper-cased. Any other kind
// fails with domain.ErrUnsupportedOptionType naming the key.
//
// Keys are visited in sorted order so that the reported key is stable
// when more than one option is bad.
func Translate(opts map[string]Value) (Definitions, error) {
	defs := make(Definitions, len(opts))
	from := make(map[string]string, len(opts))

	for _, name := range slices.Sorted(maps.Keys(opts)) {
		val, err := translate(name, opts[name])
		if err != nil {
			return nil, err
		}
		key := strings.ToUpper(name)
		if prev, dup := from[key]; dup {
			err := zerr.Wrap(domain.ErrOptionKeyCollision, fmt.Sprintf("options %q and %q both define %s", prev, name, key))
			return nil, zerr.With(err, "definition", key)
		}
		from[key] = name
		defs[key] = val
	}
	return defs, nil
}

func translate(name string, v Value) (string, error) {
	switch v.Kind() {
	case Bool:
		if b, _ := v.Bool(); b {
			return "1", nil
		}
		return "0", nil
	case String:
		s, _ := v.Str()
		return strings.ToUpper(s), nil
	}
	err := zerr.Wrap(domain.ErrUnsupportedOptionType, fmt.Sprintf("option %q has kind %s", name, v.KindName()))
	return "", zerr.With(err, "option", name)
}

// WithProfile returns a copy of defs with key set to the build profile.
// The profile is stored verbatim.
func WithProfile(defs Definitions, key, profile string) Definitions {
	out := make(Definitions, len(defs)+1)
	maps.Copy(out, defs)
	out[key] = profile
	return out
}
