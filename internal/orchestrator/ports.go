package orchestrator

import (
	"context"

	"github.com/goplus/vkbuild/internal/state"
)

// ShaderCompiler runs the out-of-band shader compilation step.
//
//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks
type ShaderCompiler interface {
	Compile(ctx context.Context) error
}

// ArtifactPlacer copies runtime shared libraries from package roots into
// dst and returns what it placed. It is best effort: having nothing to
// copy is not an error.
type ArtifactPlacer interface {
	Place(ctx context.Context, roots []string, dst string) ([]string, error)
}

// StateStore persists the outcome of the configure phase.
type StateStore interface {
	Load() (*state.State, error)
	Save(st *state.State) error
}
