//go:build !llama

package bridge

import (
	"context"

	"llmbridge/pkg/types"
)

// This file compiles when the 'llama' build tag is NOT set, keeping
// default builds CGO-free. The real engine lives in engine_llama.go.

var llamaBuilt = false

type llamaEngine struct{}

// NewLlamaEngine returns an engine that refuses to run: real inference
// requires the 'llama' build tag. No mocked generation in production
// binaries.
func NewLlamaEngine() Engine { return llamaEngine{} }

func (llamaEngine) Name() string { return "llama" }

func (llamaEngine) Generate(ctx context.Context, _ ModelSpec, _ types.GenerateRequest, _ ChunkSink) (types.Response, error) {
	if err := ctx.Err(); err != nil {
		return types.Response{}, err
	}
	return types.Response{}, ErrBackendUnavailable("llama support not built (missing 'llama' build tag)")
}
