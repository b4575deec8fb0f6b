package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestPlaceWindows(t *testing.T) {
	pkgA := t.TempDir()
	pkgB := t.TempDir()
	writeFiles(t, pkgA, map[string]string{
		"bin/glfw3.dll":    "glfw",
		"bin/glfw3.pdb":    "debug",
		"lib/glfw3dll.lib": "import",
	})
	writeFiles(t, pkgB, map[string]string{
		"bin/vulkan-1.dll": "vulkan",
		"bin/glfw3.dll":    "shadowed",
	})
	dst := filepath.Join(t.TempDir(), "bin")

	placed, err := Place(context.Background(), "windows", []string{pkgA, pkgB}, dst)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dst, "glfw3.dll"), filepath.Join(dst, "vulkan-1.dll")}, placed)

	data, err := os.ReadFile(filepath.Join(dst, "glfw3.dll"))
	require.NoError(t, err)
	assert.Equal(t, "glfw", string(data))
	assert.NoFileExists(t, filepath.Join(dst, "glfw3.pdb"))
}

func TestPlaceDarwin(t *testing.T) {
	pkg := t.TempDir()
	writeFiles(t, pkg, map[string]string{
		"lib/libfoo.dylib":       "a",
		"lib/libfoo.1.2.3.dylib": "b",
		"lib/libfoo.dylib.1":     "c",
		"lib/libfoo.a":           "static",
		"bin/tool.dylib":         "wrong folder",
	})
	dst := t.TempDir()

	placed, err := Place(context.Background(), "darwin", []string{pkg}, dst)
	require.NoError(t, err)
	assert.Len(t, placed, 3)
	for _, name := range []string{"libfoo.dylib", "libfoo.1.2.3.dylib", "libfoo.dylib.1"} {
		assert.FileExists(t, filepath.Join(dst, name))
	}
	assert.NoFileExists(t, filepath.Join(dst, "libfoo.a"))
	assert.NoFileExists(t, filepath.Join(dst, "tool.dylib"))
}

func TestPlaceNoMatchesIsNotAnError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	dst := filepath.Join(t.TempDir(), "out")

	placed, err := Place(context.Background(), "windows", []string{missing}, dst)
	require.NoError(t, err)
	assert.Empty(t, placed)
	assert.NoDirExists(t, dst)
}

func TestPlaceOtherPlatformIsNoop(t *testing.T) {
	pkg := t.TempDir()
	writeFiles(t, pkg, map[string]string{"lib/libfoo.so": "so", "bin/foo.dll": "dll"})
	dst := t.TempDir()

	placed, err := Placer{Platform: "linux"}.Place(context.Background(), []string{pkg}, dst)
	require.NoError(t, err)
	assert.Empty(t, placed)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlaceOverwrites(t *testing.T) {
	pkg := t.TempDir()
	writeFiles(t, pkg, map[string]string{"bin/a.dll": "new"})
	dst := t.TempDir()
	writeFiles(t, dst, map[string]string{"a.dll": "old and longer"})

	_, err := Place(context.Background(), "windows", []string{pkg}, dst)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dst, "a.dll"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestRuleFor(t *testing.T) {
	r, ok := RuleFor("darwin")
	require.True(t, ok)
	assert.Equal(t, Rule{SubDir: "lib", Pattern: "*.dylib*"}, r)

	_, ok = RuleFor("linux")
	assert.False(t, ok)
}
