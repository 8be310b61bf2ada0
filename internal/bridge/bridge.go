// Package bridge exposes model lifecycle and generation operations to
// external callers. It composes the handle registry with a generation
// engine and enforces the boundary discipline: no panic and no Go error
// ever crosses out of a public operation; failures surface as the zero
// handle or as a well-formed reply response.
package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"llmbridge/internal/registry"
	"llmbridge/pkg/types"
)

// Bridge is the externally callable API surface.
type Bridge struct {
	reg    *registry.Registry
	engine Engine
	log    zerolog.Logger
}

// New constructs a Bridge over reg and engine. The registry is owned by
// the caller so the FFI layer, the HTTP layer, and the legacy facade
// can share one table.
func New(reg *registry.Registry, engine Engine, log zerolog.Logger) *Bridge {
	return &Bridge{reg: reg, engine: engine, log: log.With().Str("component", "bridge").Logger()}
}

// Registry returns the handle table backing this bridge.
func (b *Bridge) Registry() *registry.Registry { return b.reg }

// EngineName reports the active engine for status output.
func (b *Bridge) EngineName() string { return b.engine.Name() }

// InitModel creates a model context for path and returns its handle, or
// 0 on failure. The stub registry cannot fail, but a real backend may;
// any internal fault is converted to 0 rather than escaping.
func (b *Bridge) InitModel(path string) (h int64) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error().Interface("panic", rec).Str("path", path).Msg("initModel panicked")
			h = int64(registry.None)
		}
	}()
	handle := b.reg.Create(path)
	b.log.Info().Str("path", path).Int64("handle", int64(handle)).Msg("model initialized")
	return int64(handle)
}

// Generate produces a response for prompt against the context handle.
// An invalid or freed handle yields the fixed not-loaded reply with no
// side effects; the engine is not consulted. An engine error or panic
// also yields a well-formed reply, leaving the registry untouched.
func (b *Bridge) Generate(ctx context.Context, handle int64, prompt string, maxTokens int) types.Response {
	return b.GenerateStream(ctx, types.GenerateRequest{Handle: handle, Prompt: prompt, MaxTokens: maxTokens}, nil)
}

// GenerateStream is Generate with an optional sink for incremental
// output. The existence check copies context fields under the registry
// lock and releases it before the engine runs, so a concurrent
// FreeModel cannot invalidate anything the engine touches.
func (b *Bridge) GenerateStream(ctx context.Context, req types.GenerateRequest, sink ChunkSink) (resp types.Response) {
	mctx, ok := b.reg.Lookup(registry.Handle(req.Handle))
	if !ok {
		b.log.Error().Int64("handle", req.Handle).Msg("invalid context handle")
		return types.NotLoaded()
	}
	// mctx is a copy taken under the registry lock; a concurrent free of
	// this handle cannot invalidate anything the engine sees.
	spec := ModelSpec{Path: mctx.Path, ContextSize: mctx.ContextSize, Threads: mctx.Threads}

	b.log.Debug().Int64("handle", req.Handle).Int("max_tokens", req.MaxTokens).Str("prompt", truncate(req.Prompt, 100)).Msg("generate")

	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error().Interface("panic", rec).Int64("handle", req.Handle).Msg("engine panicked")
			resp = types.Reply("Error: generation failed")
		}
	}()

	out, err := b.engine.Generate(ctx, spec, req, sink)
	if err != nil {
		b.log.Error().Err(err).Int64("handle", req.Handle).Msg("generation failed")
		return types.Reply("Error: generation failed: " + err.Error())
	}
	b.log.Info().Str("action", string(out.Action)).Msg("generated response")
	return out
}

// FreeModel releases the context for handle. Freeing an unknown or
// already-freed handle is a safe no-op (logged only).
func (b *Bridge) FreeModel(handle int64) {
	if b.reg.Destroy(registry.Handle(handle)) {
		b.log.Info().Int64("handle", handle).Msg("model context freed")
		return
	}
	b.log.Error().Int64("handle", handle).Msg("invalid context handle")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
