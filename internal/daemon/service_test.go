package daemon

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"llmbridge/internal/bridge"
	"llmbridge/internal/registry"
	"llmbridge/pkg/types"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	b := bridge.New(registry.New(), bridge.NewKeywordEngine(), zerolog.Nop())
	return New(b, "")
}

func TestContextsReflectRegistry(t *testing.T) {
	s := newTestService(t)
	h1 := s.InitModel("/models/a.gguf")
	h2 := s.InitModel("/models/b.gguf")
	if h1 == 0 || h2 == 0 {
		t.Fatalf("init failed: %d %d", h1, h2)
	}

	ctxs := s.Contexts()
	if len(ctxs) != 2 {
		t.Fatalf("contexts=%d", len(ctxs))
	}
	if ctxs[0].Handle != h1 || ctxs[1].Handle != h2 {
		t.Fatalf("order: %+v", ctxs)
	}
	if ctxs[0].Path != "/models/a.gguf" {
		t.Fatalf("path=%s", ctxs[0].Path)
	}

	s.FreeModel(h1)
	if got := len(s.Contexts()); got != 1 {
		t.Fatalf("after free: %d", got)
	}
}

func TestStatusSnapshot(t *testing.T) {
	s := newTestService(t)
	s.InitModel("/models/a.gguf")
	st := s.Status()
	if st.Engine != "keyword" {
		t.Fatalf("engine=%s", st.Engine)
	}
	if len(st.Contexts) != 1 {
		t.Fatalf("contexts=%d", len(st.Contexts))
	}
	if st.ServerTimeUnix == 0 {
		t.Fatal("server time missing")
	}
}

func TestGenerateStreamDelegates(t *testing.T) {
	s := newTestService(t)
	h := s.InitModel("/models/a.gguf")
	resp := s.GenerateStream(context.Background(), types.GenerateRequest{Handle: h, Prompt: "help"}, nil)
	if resp.Action != types.ActionReply {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestCatalogEmptyWithoutDir(t *testing.T) {
	s := newTestService(t)
	models, err := s.Catalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if models != nil {
		t.Fatalf("models=%+v", models)
	}
}
