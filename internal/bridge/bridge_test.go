package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"llmbridge/internal/registry"
	"llmbridge/pkg/types"
)

func newTestBridge(eng Engine) *Bridge {
	if eng == nil {
		eng = NewKeywordEngine()
	}
	return New(registry.New(), eng, zerolog.Nop())
}

// panicEngine simulates a faulty backend.
type panicEngine struct{}

func (panicEngine) Name() string { return "panic" }
func (panicEngine) Generate(context.Context, ModelSpec, types.GenerateRequest, ChunkSink) (types.Response, error) {
	panic("backend exploded")
}

// errEngine always fails with a plain error.
type errEngine struct{ err error }

func (errEngine) Name() string { return "err" }
func (e errEngine) Generate(context.Context, ModelSpec, types.GenerateRequest, ChunkSink) (types.Response, error) {
	return types.Response{}, e.err
}

func TestInitModelReturnsLiveHandle(t *testing.T) {
	b := newTestBridge(nil)
	h := b.InitModel("/models/a.gguf")
	if h == 0 {
		t.Fatalf("expected non-zero handle")
	}
	resp := b.Generate(context.Background(), h, "hello", 16)
	if resp.Encode() == types.NotLoaded().Encode() {
		t.Fatalf("fresh handle treated as not loaded")
	}
	if resp.Action != types.ActionReply {
		t.Fatalf("action=%s", resp.Action)
	}
}

func TestInitModelHandlesUnique(t *testing.T) {
	b := newTestBridge(nil)
	h1 := b.InitModel("a")
	h2 := b.InitModel("a")
	if h1 == h2 {
		t.Fatalf("duplicate handle %d", h1)
	}
}

func TestGenerateInvalidHandle(t *testing.T) {
	b := newTestBridge(nil)
	want := types.NotLoaded()
	got := b.Generate(context.Background(), 42, "create goal", 16)
	if got.Action != want.Action || got.Message != want.Message {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if got.Encode() != want.Encode() {
		t.Fatalf("response bytes differ: %s vs %s", got.Encode(), want.Encode())
	}
}

func TestGenerateAfterFree(t *testing.T) {
	b := newTestBridge(nil)
	h := b.InitModel("a")
	b.FreeModel(h)
	got := b.Generate(context.Background(), h, "hello", 16)
	if got.Encode() != types.NotLoaded().Encode() {
		t.Fatalf("freed handle did not yield the not-loaded reply: %s", got.Encode())
	}
}

func TestFreeModelIdempotent(t *testing.T) {
	b := newTestBridge(nil)
	h := b.InitModel("a")
	b.FreeModel(h)
	// must not panic or disturb other state
	b.FreeModel(h)
	b.FreeModel(12345)
	if !b.Registry().Empty() {
		t.Fatalf("registry not empty")
	}
}

func TestEnginePanicIsolated(t *testing.T) {
	b := newTestBridge(panicEngine{})
	h := b.InitModel("a")
	resp := b.Generate(context.Background(), h, "boom", 8)
	if resp.Action != types.ActionReply {
		t.Fatalf("panic leaked a non-reply response: %+v", resp)
	}
	// registry invariants must hold after the fault
	if _, ok := b.Registry().Lookup(registry.Handle(h)); !ok {
		t.Fatalf("registry corrupted by engine panic")
	}
	b.FreeModel(h)
}

func TestEngineErrorBecomesReply(t *testing.T) {
	b := newTestBridge(errEngine{err: errors.New("no backend")})
	h := b.InitModel("a")
	resp := b.Generate(context.Background(), h, "x", 8)
	if resp.Action != types.ActionReply {
		t.Fatalf("action=%s", resp.Action)
	}
	if resp.Data == nil {
		t.Fatalf("malformed reply: %+v", resp)
	}
}

func TestInvalidHandleSkipsEngine(t *testing.T) {
	// A panicking engine proves the engine is never consulted for an
	// unknown handle.
	b := newTestBridge(panicEngine{})
	resp := b.Generate(context.Background(), 7, "x", 8)
	if resp.Encode() != types.NotLoaded().Encode() {
		t.Fatalf("got %s", resp.Encode())
	}
}

func TestLlamaStubReportsUnavailable(t *testing.T) {
	eng := NewLlamaEngine()
	if llamaBuilt {
		t.Skip("built with llama support")
	}
	_, err := eng.Generate(context.Background(), ModelSpec{Path: "x"}, types.GenerateRequest{Prompt: "hi"}, nil)
	if !IsBackendUnavailable(err) {
		t.Fatalf("expected backend-unavailable, got %v", err)
	}
}

func TestConcurrentInitFree(t *testing.T) {
	const workers = 12
	const iters = 100
	b := newTestBridge(nil)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				h := b.InitModel("p")
				if h == 0 {
					t.Error("zero handle under concurrency")
					return
				}
				resp := b.Generate(context.Background(), h, "status", 8)
				if resp.Action != types.ActionShowProgress {
					t.Errorf("own handle rejected mid-lifecycle: %+v", resp)
					return
				}
				b.FreeModel(h)
			}
		}()
	}
	wg.Wait()

	if !b.Registry().Empty() {
		t.Fatalf("registry not empty after churn: %d", b.Registry().Len())
	}
}
