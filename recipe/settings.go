package recipe

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/env"
	"go.trai.ch/zerr"
)

// Settings is the settings bundle of an invocation. Sub-settings such as
// "compiler.version" are kept in Extra.
type Settings struct {
	OS        string            `yaml:"os" json:"os"`
	Compiler  string            `yaml:"compiler" json:"compiler,omitempty"`
	BuildType string            `yaml:"build_type" json:"build_type"`
	Arch      string            `yaml:"arch" json:"arch"`
	Extra     map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// HostSettings returns the settings of the running machine with the
// build profile taken from the environment.
func HostSettings() Settings {
	return Settings{
		OS:        env.HostOS(),
		Arch:      env.HostArch(),
		BuildType: env.BuildType(),
	}
}

// Set assigns one setting. key is "os", "compiler", "build_type", "arch"
// or a dotted sub-setting like "compiler.version".
func (s *Settings) Set(key, value string) error {
	switch key {
	case "os":
		s.OS = value
	case "compiler":
		s.Compiler = value
	case "build_type":
		s.BuildType = value
	case "arch":
		s.Arch = value
	default:
		if !strings.Contains(key, ".") {
			return zerr.With(zerr.Wrap(domain.ErrInvalidSetting, fmt.Sprintf("unknown setting %q", key)), "setting", key)
		}
		if s.Extra == nil {
			s.Extra = make(map[string]string)
		}
		s.Extra[key] = value
	}
	return nil
}

// SetPair parses "key=value" and assigns it.
func (s *Settings) SetPair(pair string) error {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidSetting, fmt.Sprintf("want key=value, got %q", pair)), "setting", pair)
	}
	return s.Set(key, value)
}

// Merge returns s with the non-empty fields of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	out := s
	if o.OS != "" {
		out.OS = o.OS
	}
	if o.Compiler != "" {
		out.Compiler = o.Compiler
	}
	if o.BuildType != "" {
		out.BuildType = o.BuildType
	}
	if o.Arch != "" {
		out.Arch = o.Arch
	}
	if len(s.Extra)+len(o.Extra) > 0 {
		out.Extra = make(map[string]string, len(s.Extra)+len(o.Extra))
		maps.Copy(out.Extra, s.Extra)
		maps.Copy(out.Extra, o.Extra)
	}
	return out
}

// Map flattens the settings into key/value pairs, omitting empty values.
func (s Settings) Map() map[string]string {
	m := make(map[string]string, 4+len(s.Extra))
	for k, v := range map[string]string{"os": s.OS, "compiler": s.Compiler, "build_type": s.BuildType, "arch": s.Arch} {
		if v != "" {
			m[k] = v
		}
	}
	maps.Copy(m, s.Extra)
	return m
}

// Combination renders the settings as one string. Keys are sorted
// alphabetically and the values joined with "-".
func (s Settings) Combination() string {
	m := s.Map()
	keys := slices.Sorted(maps.Keys(m))
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = m[k]
	}
	return strings.Join(vals, "-")
}

// Platform maps the OS setting onto a Go GOOS value, which is what the
// artifact placement rules are keyed by.
func (s Settings) Platform() string {
	switch strings.ToLower(s.OS) {
	case "windows", "windowsstore", "windowsce":
		return "windows"
	case "macos", "darwin", "ios":
		return "darwin"
	case "linux", "android":
		return "linux"
	}
	return strings.ToLower(s.OS)
}
