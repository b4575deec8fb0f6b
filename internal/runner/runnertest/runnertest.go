// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"io"
	"sync"

	"github.com/goplus/vkbuild/internal/runner"
)

// Recorder records every command and answers with Fail when set.
type Recorder struct {
	mu   sync.Mutex
	Cmds []runner.Cmd
	// Fail, when non-nil, decides the result of each command.
	Fail func(c runner.Cmd) error
	// Stdout is written to Cmd.Stdout, keyed by Cmd.Bin.
	Stdout map[string]string
}

func (r *Recorder) Run(_ context.Context, c runner.Cmd) error {
	r.mu.Lock()
	r.Cmds = append(r.Cmds, c)
	r.mu.Unlock()
	if out, ok := r.Stdout[c.Bin]; ok && c.Stdout != nil {
		if _, err := io.WriteString(c.Stdout, out); err != nil {
			return err
		}
	}
	if r.Fail != nil {
		return r.Fail(c)
	}
	return nil
}

// Lines renders the recorded commands as strings.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Cmds))
	for i, c := range r.Cmds {
		out[i] = c.String()
	}
	return out
}
