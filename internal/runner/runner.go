// Package runner executes the external tools vkbuild drives (conan, cmake,
// meson, the shader compiler) and keeps their output for diagnostics.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/goplus/vkbuild/internal/logging"
)

// Cmd describes one process invocation.
type Cmd struct {
	Bin  string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env entries are merged over os.Environ().
	Env map[string]string
	// Stdout, when set, receives the standard output instead of the
	// captured diagnostics. Standard error is still captured.
	Stdout io.Writer
}

func (c Cmd) String() string {
	return strings.Join(append([]string{c.Bin}, c.Args...), " ")
}

// Runner runs commands to completion.
type Runner interface {
	Run(ctx context.Context, c Cmd) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, c Cmd) error

func (f RunnerFunc) Run(ctx context.Context, c Cmd) error { return f(ctx, c) }

// ExitError reports a command that could not start or exited non-zero.
// Output holds everything the command wrote to stdout and stderr.
type ExitError struct {
	Command string
	Code    int
	Output  []byte
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exec runs commands with os/exec. Output is captured and also streamed
// to the context logger at debug level, so it shows up with -v.
type Exec struct{}

// Default is the Runner used when a component is not given one.
var Default Runner = Exec{}

func (Exec) Run(ctx context.Context, c Cmd) error {
	logger := logging.FromContext(ctx)
	logger.Debug("exec", "cmd", c.String(), "dir", c.Dir)

	var captured bytes.Buffer
	lw := logging.NewLineWriter(logger, slog.LevelDebug, "tool", c.Bin)
	out := io.MultiWriter(&captured, lw)

	cmd := exec.CommandContext(ctx, c.Bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = out
	cmd.Stderr = out
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if len(c.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), c.Env)
	}

	err := cmd.Run()
	_ = lw.Close()
	if err == nil {
		return nil
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ExitError{Command: c.String(), Code: code, Output: captured.Bytes(), Err: err}
}

// mergeEnv overlays override on base ("KEY=VALUE" entries) and returns the
// result sorted by key.
func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(override))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	out := make([]string, 0, len(envMap))
	for k, v := range envMap {
		out = append(out, k+"="+v)
	}
	slices.Sort(out)
	return out
}
