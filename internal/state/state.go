// Package state persists what the last successful configure phase used,
// so later invocations can tell whether the build tree is stale.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/options"
	"github.com/goplus/vkbuild/internal/resolver"
	"github.com/goplus/vkbuild/pkgs/mod/module"
	"github.com/goplus/vkbuild/recipe"
	"go.trai.ch/zerr"
)

// Output directory layout:
//
//	outputDir/
//	  .vkbuild-state.json   # State of the last successful configure
//	  .vkbuild.lock         # held for the duration of an invocation
//	  conan/                # generated conanfile, toolchain and .pc files
const (
	FileName = ".vkbuild-state.json"
	LockName = ".vkbuild.lock"
)

// State is the record of one successful configure phase.
type State struct {
	Settings     recipe.Settings     `json:"settings"`
	Dependencies []module.Version    `json:"dependencies"`
	Definitions  options.Definitions `json:"definitions"`
	Digest       string              `json:"digest"`
	ConfiguredAt time.Time           `json:"configured_at"`
	// Packages are the resolved package folders, for artifact placement
	// in later invocations that do not resolve again.
	Packages []resolver.Package `json:"packages,omitempty"`
}

// New returns a State for the given inputs with its digest computed.
func New(settings recipe.Settings, mods []module.Version, defs options.Definitions, at time.Time) *State {
	return &State{
		Settings:     settings,
		Dependencies: mods,
		Definitions:  defs,
		Digest:       Digest(mods, defs),
		ConfiguredAt: at,
	}
}

// Digest hashes the dependency list, in order, and the definitions, by key.
func Digest(mods []module.Version, defs options.Definitions) string {
	h := xxhash.New()
	for _, m := range mods {
		_, _ = h.WriteString(m.Path)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(m.Version)
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0}) // section separator

	for _, k := range defs.Keys() {
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(defs[k])
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Stale reports whether the state was produced from different inputs.
// A nil State is always stale.
func (s *State) Stale(mods []module.Version, defs options.Definitions) bool {
	return s == nil || s.Digest != Digest(mods, defs)
}

// Store reads and writes the state file of one output directory.
type Store struct {
	Dir string
}

// NewStore returns the store for outputDir.
func NewStore(outputDir string) *Store {
	return &Store{Dir: outputDir}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return filepath.Join(s.Dir, FileName)
}

// Load reads the state file. A missing file yields an error matching both
// domain.ErrStateRead and fs.ErrNotExist.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, errors.Join(domain.ErrStateRead, zerr.With(zerr.Wrap(err, "read state"), "path", s.Path()))
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Join(domain.ErrStateRead, zerr.With(zerr.Wrap(err, "decode state"), "path", s.Path()))
	}
	return &st, nil
}

// Save writes st atomically.
func (s *Store) Save(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrStateWrite, err)
	}
	if err := atomicWriteFile(s.Path(), data); err != nil {
		return errors.Join(domain.ErrStateWrite, zerr.With(zerr.Wrap(err, "write state"), "path", s.Path()))
	}
	return nil
}

// IsNotExist reports whether err is a Load of a missing state file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// atomicWriteFile writes data to a temp file next to path and renames it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".vkbuild-state-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
