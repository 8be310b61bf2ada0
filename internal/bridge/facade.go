package bridge

import (
	"context"

	"github.com/rs/zerolog"

	"llmbridge/internal/registry"
	"llmbridge/pkg/types"
)

// Version reported by the legacy facade's version call.
const Version = "llmbridge v1.0.0 (stub with JSON responses)"

// Facade preserves the older single-context calling convention: one
// implicit "current" model instead of explicit handles. Every operation
// forwards to the Bridge; the current context is the smallest live
// handle, which makes the choice deterministic when several models are
// loaded.
type Facade struct {
	b   *Bridge
	log zerolog.Logger
}

// NewFacade wraps b in the legacy calling convention.
func NewFacade(b *Bridge, log zerolog.Logger) *Facade {
	return &Facade{b: b, log: log.With().Str("component", "facade").Logger()}
}

// Init prepares the backend. The stub has nothing to initialize.
func (f *Facade) Init() bool {
	f.log.Info().Msg("init called")
	return true
}

// LoadModel initializes a model and reports success. threads and
// ctxSize are accepted for interface compatibility; the stub keeps the
// context defaults, a real engine build honors them.
func (f *Facade) LoadModel(path string, threads, ctxSize int) bool {
	f.log.Info().Str("path", path).Int("threads", threads).Int("ctx_size", ctxSize).Msg("load model")
	return f.b.InitModel(path) != int64(registry.None)
}

// Generate resolves the current context and forwards to the bridge.
// Returns the fixed no-model reply when nothing is loaded. temperature
// and topP ride along for a real engine; the stub ignores them.
func (f *Facade) Generate(ctx context.Context, prompt string, maxTokens int, temperature, topP float32) types.Response {
	return f.GenerateWithCallback(ctx, prompt, maxTokens, temperature, topP, nil)
}

// GenerateWithCallback is Generate with incremental delivery: every
// chunk reaches sink, in order, before the final response is returned.
// With the stub engine that is a single delivery of the final message.
func (f *Facade) GenerateWithCallback(ctx context.Context, prompt string, maxTokens int, temperature, topP float32, sink ChunkSink) types.Response {
	h, ok := f.b.reg.Oldest()
	if !ok {
		f.log.Error().Msg("generate with no model loaded")
		return types.NoModel()
	}
	req := types.GenerateRequest{
		Handle:      int64(h),
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}
	return f.b.GenerateStream(ctx, req, sink)
}

// Unload releases every live context.
func (f *Facade) Unload() {
	n := f.b.reg.DestroyAll()
	f.log.Info().Int("freed", n).Msg("unload model")
}

// Cleanup tears down all resources. Identical to Unload today; a real
// engine build additionally frees its backend here.
func (f *Facade) Cleanup() {
	f.log.Info().Msg("cleanup")
	f.Unload()
}

// IsLoaded reports whether any context is live.
func (f *Facade) IsLoaded() bool {
	return !f.b.reg.Empty()
}

// ModelInfo returns a JSON snapshot of the current context, or the
// empty string when nothing is loaded.
func (f *Facade) ModelInfo() string {
	h, ok := f.b.reg.Oldest()
	if !ok {
		return ""
	}
	mctx, ok := f.b.reg.Lookup(h)
	if !ok {
		return ""
	}
	return types.ModelInfo{
		Status:      "loaded",
		Path:        mctx.Path,
		ContextSize: mctx.ContextSize,
		Threads:     mctx.Threads,
	}.Encode()
}

// Version reports the native layer version string.
func (f *Facade) Version() string { return Version }

// IsAvailable reports whether the native layer is present. Always true
// once this code is running; the managed side uses it to distinguish a
// missing library from a loaded one.
func (f *Facade) IsAvailable() bool { return true }
