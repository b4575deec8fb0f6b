package deps_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goplus/vkbuild/internal/deps"
	"github.com/goplus/vkbuild/internal/domain"
	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/pkgs/mod/module"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclare_OverrideWins(t *testing.T) {
	var s deps.Set
	require.NoError(t, s.Declare("glm", "0.9.9.8", false))
	require.NoError(t, s.Declare("glm", "0.9.8.5", true))

	got := s.ResolveAll(context.Background())
	assert.Equal(t, []deps.Spec{{Name: "glm", Version: "0.9.8.5", Override: true}}, got)
}

func TestDeclare_OverrideBeforePlain(t *testing.T) {
	var s deps.Set
	require.NoError(t, s.Declare("stb", "cci.20240531", true))
	require.NoError(t, s.Declare("stb", "cci.20230920", false))

	got := s.ResolveAll(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "cci.20240531", got[0].Version)
}

func TestDeclare_DuplicateWithoutOverride(t *testing.T) {
	var s deps.Set
	require.NoError(t, s.Declare("glm", "0.9.9.8", false))

	err := s.Declare("glm", "0.9.9.8", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateDependency))
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "glm")
}

func TestDeclare_EmptyName(t *testing.T) {
	var s deps.Set
	err := s.Declare("", "1.0", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Zero(t, s.Len())
}

func TestDeclare_FirstOverrideWins(t *testing.T) {
	var s deps.Set
	require.NoError(t, s.Declare("libiconv", "1.17", false))
	require.NoError(t, s.Declare("libiconv", "1.18", true))

	// repeating the same pin is harmless
	require.NoError(t, s.Declare("libiconv", "1.18", true))

	err := s.Declare("libiconv", "1.16", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflictingOverride))

	got := s.ResolveAll(context.Background())
	assert.Equal(t, "1.18", got[0].Version)
	assert.Len(t, s.Declared(), 2)
}

func TestResolveAll_KeepsFirstDeclarationOrder(t *testing.T) {
	s, err := deps.NewSet(
		deps.Spec{Name: "glfw", Version: "3.3.8"},
		deps.Spec{Name: "glm", Version: "0.9.9.8"},
		deps.Spec{Name: "fmt", Version: "11.2.0"},
		deps.Spec{Name: "libiconv", Version: "1.18", Override: true},
		deps.Spec{Name: "glm", Version: "0.9.8.5", Override: true},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())

	got := deps.Modules(s.ResolveAll(context.Background()))
	assert.Equal(t, []module.Version{
		{Path: "glfw", Version: "3.3.8"},
		{Path: "glm", Version: "0.9.8.5"},
		{Path: "fmt", Version: "11.2.0"},
		{Path: "libiconv", Version: "1.18"},
	}, got)
}

func TestNewSet_PropagatesError(t *testing.T) {
	_, err := deps.NewSet(
		deps.Spec{Name: "glm", Version: "0.9.9.8"},
		deps.Spec{Name: "glm", Version: "1.0.0"},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateDependency))
}

func TestResolveAll_WarnsOnDowngrade(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(&buf, logging.Options{}))

	var s deps.Set
	require.NoError(t, s.Declare("glm", "0.9.9.8", false))
	require.NoError(t, s.Declare("glm", "0.9.8.5", true))
	s.ResolveAll(ctx)

	assert.Contains(t, buf.String(), "override downgrades dependency")
	assert.Contains(t, buf.String(), "forced=0.9.8.5")
}

func TestResolveAll_CustomCompare(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.New(&buf, logging.Options{}))

	s := deps.Set{Compare: func(v1, v2 string) int { return -1 }}
	require.NoError(t, s.Declare("fmt", "9.1.0", false))
	require.NoError(t, s.Declare("fmt", "10.2.1", true))
	got := s.ResolveAll(ctx)

	require.Len(t, got, 1)
	assert.Equal(t, "10.2.1", got[0].Version)
	assert.Contains(t, buf.String(), "override downgrades dependency")
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"1.2.3", "1.10.0", -1},
		{"v2.0.0", "1.9.9", 1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"0.9.9.8", "0.9.8.5", 1},
		{"1.3.243.0", "1.3.243.0", 0},
		{"cci.20240531", "cci.20230920", 1},
	}
	for _, tt := range tests {
		t.Run(tt.v1+"_"+tt.v2, func(t *testing.T) {
			assert.Equal(t, tt.want, deps.CompareVersions(tt.v1, tt.v2))
		})
	}
}

func TestSpecString(t *testing.T) {
	assert.Equal(t, "glm/0.9.9.8", deps.Spec{Name: "glm", Version: "0.9.9.8"}.String())
	assert.Equal(t, "stb/cci.20240531 (override)", deps.Spec{Name: "stb", Version: "cci.20240531", Override: true}.String())
}
