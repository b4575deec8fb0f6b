package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, GeneratorMeson, r.Generator)
	assert.Equal(t, "engine", r.Targets.Primary)
	assert.Equal(t, "engine_tests", r.Targets.Test)
	assert.Equal(t, "bin", r.RuntimeDir)
	assert.Len(t, r.Requires, 14)
	assert.Equal(t, []string{"libiconv/1.18", "stb/cci.20240531"}, r.Overrides)
	assert.Equal(t, options.BoolValue(false), r.Options["shared"])

	set, err := r.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, 16, set.Len())
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	src := `
name: demo
requires: [glm/0.9.9.8]
overrides: [glm/0.9.8.5]
generator: cmake
settings:
  compiler: clang
options:
  mode: debug
targets: {primary: demo, test: demo_tests}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	r, err := Parse(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "clang", r.Settings.Compiler)
	assert.Equal(t, options.StringValue("debug"), r.Options["mode"])

	specs, err := r.Specs()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.False(t, specs[0].Override)
	assert.True(t, specs[1].Override)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown field", "name: x\nbogus: 1\ntargets: {primary: a, test: b}\n", domain.ErrRecipeParse},
		{"unknown generator", "generator: bazel\ntargets: {primary: a, test: b}\n", domain.ErrConfiguration},
		{"missing primary", "targets: {test: b}\n", domain.ErrConfiguration},
		{"missing test", "targets: {primary: a}\n", domain.ErrConfiguration},
		{"bad reference", "requires: [glm]\ntargets: {primary: a, test: b}\n", domain.ErrConfiguration},
		{"user channel", "requires: [zlib/1.2.13@user/channel]\ntargets: {primary: a, test: b}\n", domain.ErrConfiguration},
		{"revision override", "requires: [zlib/1.2.13]\noverrides: [zlib/1.2.11#8f1b2c]\ntargets: {primary: a, test: b}\n", domain.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecipeRead))
}

func TestDependencies_Duplicate(t *testing.T) {
	r, err := Parse("dup.yaml", []byte("requires: [glm/0.9.9.8, glm/0.9.9.8]\ntargets: {primary: a, test: b}\n"))
	require.NoError(t, err)

	_, err = r.Dependencies()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateDependency))
}

func TestSetOption(t *testing.T) {
	r := &Recipe{}
	require.NoError(t, r.SetOption("shared=true"))
	require.NoError(t, r.SetOption("mode=debug"))
	require.NoError(t, r.SetOption("empty="))

	assert.Equal(t, options.BoolValue(true), r.Options["shared"])
	assert.Equal(t, options.StringValue("debug"), r.Options["mode"])
	assert.Equal(t, options.StringValue(""), r.Options["empty"])

	assert.Error(t, r.SetOption("novalue"))
	assert.Error(t, r.SetOption("=x"))
}

func TestShadersCommandFor(t *testing.T) {
	s := Shaders{Command: []string{"sh", "build.sh"}, WindowsCommand: []string{"build.bat"}}
	assert.Equal(t, []string{"build.bat"}, s.CommandFor("windows"))
	assert.Equal(t, []string{"sh", "build.sh"}, s.CommandFor("linux"))

	s.WindowsCommand = nil
	assert.Equal(t, []string{"sh", "build.sh"}, s.CommandFor("windows"))
	assert.False(t, Shaders{}.Enabled())
}
