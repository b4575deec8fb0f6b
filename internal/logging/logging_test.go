package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/goplus/vkbuild/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PrettyLevels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{})

	logger.Debug("hidden")
	logger.Info("configure", "dir", "build")
	logger.Warn("careful")
	logger.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "• configure dir=build\n")
	assert.Contains(t, out, "! careful\n")
	assert.Contains(t, out, "✗ boom\n")
}

func TestNew_VerboseShowsDebug(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Verbose: true})
	logger.Debug("cmake output")
	assert.Contains(t, buf.String(), "cmake output")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{JSON: true})
	logger.Info("build", "target", "engine")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "build", rec["msg"])
	assert.Equal(t, "engine", rec["target"])
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	logger := slog.New(logging.NewPrettyHandler(&buf, nil)).With("phase", "build").WithGroup("cmd")
	logger.Info("run", "bin", "cmake")
	assert.Equal(t, "• run cmd.phase=build cmd.bin=cmake\n", buf.String())
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), logging.FromContext(ctx))

	logger := logging.Discard()
	ctx = logging.WithLogger(ctx, logger)
	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestLineWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{})
	w := logging.NewLineWriter(logger, slog.LevelInfo, "tool", "glslc")

	_, err := w.Write([]byte("first\r\nsec"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ond\n\npartial"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"• first tool=glslc",
		"• second tool=glslc",
		"• partial tool=glslc",
	}, lines)
}
