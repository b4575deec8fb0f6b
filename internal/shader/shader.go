// Package shader runs the project's shader compilation script. The
// script is opaque to vkbuild: it is run once, in its own directory, and
// only its exit status matters.
package shader

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"

	"github.com/goplus/vkbuild/internal/logging"
	"github.com/goplus/vkbuild/internal/runner"
	"github.com/goplus/vkbuild/recipe"
	"go.trai.ch/zerr"
)

// ErrNoCommand is returned by Compile when no command is configured.
var ErrNoCommand = zerr.New("no shader command configured")

// Compiler runs Command with Dir as the working directory.
type Compiler struct {
	Dir     string
	Command []string
	runner  runner.Runner
}

// New returns the compiler configured by the recipe for the host OS.
// The recipe's shader directory is relative to sourceDir.
func New(sourceDir string, cfg recipe.Shaders) *Compiler {
	return &Compiler{
		Dir:     filepath.Join(sourceDir, cfg.Dir),
		Command: cfg.CommandFor(runtime.GOOS),
		runner:  runner.Default,
	}
}

// WithRunner replaces the process runner, mainly for tests.
func (c *Compiler) WithRunner(r runner.Runner) *Compiler {
	c.runner = r
	return c
}

// Compile runs the shader command and waits for it.
func (c *Compiler) Compile(ctx context.Context) error {
	if len(c.Command) == 0 {
		return ErrNoCommand
	}
	logging.FromContext(ctx).Info("compiling shaders", "dir", c.Dir)
	err := c.runner.Run(ctx, runner.Cmd{Bin: c.Command[0], Args: c.Command[1:], Dir: c.Dir})
	if err != nil {
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) {
			return zerr.With(zerr.Wrap(err, "shader compilation failed"), "exit_code", exitErr.Code)
		}
		return zerr.Wrap(err, "shader compilation failed")
	}
	return nil
}
