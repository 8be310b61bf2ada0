// Package daemon adapts the bridge to the HTTP API surface: it adds
// the reporting views (contexts, status, catalog) that the native
// boundary does not expose, without widening the bridge itself.
package daemon

import (
	"context"
	"time"

	"llmbridge/internal/bridge"
	"llmbridge/internal/catalog"
	"llmbridge/internal/httpapi"
	"llmbridge/pkg/types"
)

// Service implements httpapi.Service over a Bridge.
type Service struct {
	b         *bridge.Bridge
	modelsDir string
	start     time.Time
}

// New builds the HTTP-facing service. modelsDir may be empty; the
// catalog endpoint then reports an empty listing.
func New(b *bridge.Bridge, modelsDir string) *Service {
	return &Service{b: b, modelsDir: modelsDir, start: time.Now()}
}

func (s *Service) InitModel(path string) int64 {
	h := s.b.InitModel(path)
	httpapi.SetContextsLive(s.b.Registry().Len())
	return h
}

func (s *Service) GenerateStream(ctx context.Context, req types.GenerateRequest, sink bridge.ChunkSink) types.Response {
	return s.b.GenerateStream(ctx, req, sink)
}

func (s *Service) FreeModel(handle int64) {
	s.b.FreeModel(handle)
	httpapi.SetContextsLive(s.b.Registry().Len())
}

func (s *Service) Contexts() []types.ContextStatus {
	entries := s.b.Registry().Snapshot()
	out := make([]types.ContextStatus, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.ContextStatus{
			Handle:      int64(e.Handle),
			Path:        e.Context.Path,
			Loaded:      e.Context.Loaded,
			ContextSize: e.Context.ContextSize,
			Threads:     e.Context.Threads,
			CreatedUnix: e.Context.CreatedAt.Unix(),
		})
	}
	return out
}

func (s *Service) Status() types.StatusResponse {
	now := time.Now()
	return types.StatusResponse{
		Contexts:       s.Contexts(),
		Engine:         s.b.EngineName(),
		UptimeSeconds:  int64(now.Sub(s.start).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}

func (s *Service) Catalog() ([]types.ModelFile, error) {
	if s.modelsDir == "" {
		return nil, nil
	}
	return catalog.LoadDir(s.modelsDir)
}

// Ready reports liveness of the service. The bridge is synchronous and
// has no warmup phase, so a constructed service is a ready one.
func (s *Service) Ready() bool { return true }
