package bridge

import (
	"context"

	"llmbridge/pkg/types"
)

// Engine abstracts the generation backend behind the bridge. The
// keyword classifier satisfies it today; a llama.cpp build satisfies it
// behind the 'llama' tag. Whatever the backend, callers only ever see
// the response schema.
type Engine interface {
	// Name identifies the engine in status output and logs.
	Name() string
	// Generate produces the response for req against the model described
	// by spec. When sink is non-nil the engine must push each produced
	// chunk to it, in generation order, before returning. Implementations
	// must return promptly when ctx is canceled.
	Generate(ctx context.Context, spec ModelSpec, req types.GenerateRequest, sink ChunkSink) (types.Response, error)
}

// ModelSpec is the engine's view of a model context: plain values
// copied out of the registry under its lock, safe to use after a
// concurrent free of the originating handle.
type ModelSpec struct {
	Path        string
	ContextSize int
	Threads     int
}

// ChunkSink receives incremental output during generation. Push-style:
// the engine is the producer; Push is called once per token-or-chunk
// and every Push happens before the final response is returned.
type ChunkSink interface {
	Push(chunk string) error
}

// SinkFunc adapts a function to a ChunkSink.
type SinkFunc func(chunk string) error

func (f SinkFunc) Push(chunk string) error { return f(chunk) }

// ChannelSink buffers chunks onto a channel for pull-style consumers.
// The producer side never blocks past the buffer; Close signals end of
// stream.
type ChannelSink struct {
	ch chan string
}

// NewChannelSink returns a sink buffering up to n chunks.
func NewChannelSink(n int) *ChannelSink {
	if n <= 0 {
		n = 64
	}
	return &ChannelSink{ch: make(chan string, n)}
}

func (s *ChannelSink) Push(chunk string) error {
	s.ch <- chunk
	return nil
}

// Chunks exposes the consumer side of the stream.
func (s *ChannelSink) Chunks() <-chan string { return s.ch }

// Close ends the stream. Call exactly once, after generation returns.
func (s *ChannelSink) Close() { close(s.ch) }
