package bridge

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"llmbridge/internal/registry"
	"llmbridge/pkg/types"
)

func newTestFacade() *Facade {
	return NewFacade(newTestBridge(nil), zerolog.Nop())
}

func TestFacadeLifecycle(t *testing.T) {
	f := newTestFacade()
	if !f.Init() {
		t.Fatalf("Init returned false")
	}
	if f.IsLoaded() {
		t.Fatalf("loaded before any LoadModel")
	}
	if !f.LoadModel("/models/a.gguf", 8, 4096) {
		t.Fatalf("LoadModel failed")
	}
	if !f.IsLoaded() {
		t.Fatalf("not loaded after LoadModel")
	}
	f.Unload()
	if f.IsLoaded() {
		t.Fatalf("still loaded after Unload")
	}
}

func TestFacadeGenerateNoModel(t *testing.T) {
	f := newTestFacade()
	got := f.Generate(context.Background(), "hello", 16, 0.7, 0.9)
	if got.Encode() != types.NoModel().Encode() {
		t.Fatalf("got %s", got.Encode())
	}
}

func TestFacadeGenerateUsesOldestContext(t *testing.T) {
	f := newTestFacade()
	b := f.b
	h1 := b.InitModel("first")
	h2 := b.InitModel("second")
	_ = h2

	// Current context is the smallest live handle.
	if h, _ := b.reg.Oldest(); h != registry.Handle(h1) {
		t.Fatalf("oldest=%d want %d", h, h1)
	}
	resp := f.Generate(context.Background(), `add task "x"`, 16, 0, 0)
	if resp.Action != types.ActionCreateTask {
		t.Fatalf("action=%s", resp.Action)
	}

	// Free the oldest; the facade must fail over to the next handle.
	b.FreeModel(h1)
	resp = f.Generate(context.Background(), "help", 16, 0, 0)
	if resp.Action != types.ActionReply || resp.Encode() == types.NoModel().Encode() {
		t.Fatalf("facade lost its context: %s", resp.Encode())
	}
}

func TestFacadeCallbackDeliversBeforeReturn(t *testing.T) {
	f := newTestFacade()
	f.LoadModel("a", 0, 0)

	var chunks []string
	sink := SinkFunc(func(c string) error {
		chunks = append(chunks, c)
		return nil
	})
	resp := f.GenerateWithCallback(context.Background(), "help", 16, 0, 0, sink)
	// Stub engine: exactly one delivery, equal to the final message.
	if len(chunks) != 1 {
		t.Fatalf("chunks=%d want 1", len(chunks))
	}
	if chunks[0] != resp.Message {
		t.Fatalf("chunk %q != message %q", chunks[0], resp.Message)
	}
}

func TestFacadeModelInfo(t *testing.T) {
	f := newTestFacade()
	if info := f.ModelInfo(); info != "" {
		t.Fatalf("expected empty info, got %q", info)
	}
	f.LoadModel("/models/phi.gguf", 0, 0)
	info := f.ModelInfo()
	var mi types.ModelInfo
	if err := types.JSON.UnmarshalFromString(info, &mi); err != nil {
		t.Fatalf("bad info JSON %q: %v", info, err)
	}
	if mi.Status != "loaded" || mi.Path != "/models/phi.gguf" {
		t.Fatalf("unexpected info: %+v", mi)
	}
	if mi.ContextSize != registry.DefaultContextSize || mi.Threads != registry.DefaultThreads {
		t.Fatalf("stub must keep context defaults: %+v", mi)
	}
}

func TestFacadeCleanupFreesEverything(t *testing.T) {
	f := newTestFacade()
	f.LoadModel("a", 0, 0)
	f.LoadModel("b", 0, 0)
	f.Cleanup()
	if f.IsLoaded() {
		t.Fatalf("contexts survive Cleanup")
	}
}

func TestFacadeVersionAndAvailability(t *testing.T) {
	f := newTestFacade()
	if !f.IsAvailable() {
		t.Fatalf("IsAvailable returned false")
	}
	if v := f.Version(); !strings.Contains(v, "llmbridge") {
		t.Fatalf("unexpected version %q", v)
	}
}
