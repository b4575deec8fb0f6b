package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goplus/vkbuild/internal/domain"
)

// Phase names one step of an invocation.
type Phase string

const (
	PhaseResolve   Phase = "resolve"
	PhaseConfigure Phase = "configure"
	PhaseShaders   Phase = "shaders"
	PhaseBuild     Phase = "build"
	PhaseTest      Phase = "test"
	PhaseInstall   Phase = "install"
)

// Flags selects the phases of an invocation. They are read, never written:
// the test phase works on its own copy.
type Flags struct {
	Configure bool
	Build     bool
	Test      bool
	Install   bool
}

// AllPhases requests configure, build, test and install.
func AllPhases() Flags {
	return Flags{Configure: true, Build: true, Test: true, Install: true}
}

// Any reports whether at least one phase is requested.
func (f Flags) Any() bool {
	return f.Configure || f.Build || f.Test || f.Install
}

func (f Flags) String() string {
	var names []string
	for _, p := range []struct {
		on    bool
		phase Phase
	}{
		{f.Configure, PhaseConfigure},
		{f.Build, PhaseBuild},
		{f.Test, PhaseTest},
		{f.Install, PhaseInstall},
	} {
		if p.on {
			names = append(names, string(p.phase))
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// PhaseError reports the phase that failed. It matches
// domain.ErrPhaseExecution with errors.Is and unwraps to the
// collaborator's error, usually a *runner.ExitError.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

func (e *PhaseError) Is(target error) bool {
	return target == domain.ErrPhaseExecution
}
