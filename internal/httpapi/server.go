// Package httpapi serves the bridge over a local HTTP surface for
// integration tests and tooling. It is a thin shell: every operation
// maps onto one bridge call, and the generate endpoint honors the same
// fixed-response contract as the native boundary.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llmbridge/internal/bridge"
	"llmbridge/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	InitModel(path string) int64
	GenerateStream(ctx context.Context, req types.GenerateRequest, sink bridge.ChunkSink) types.Response
	FreeModel(handle int64)
	Contexts() []types.ContextStatus
	Status() types.StatusResponse
	Catalog() ([]types.ModelFile, error)
	Ready() bool
}

// NewMux builds the router over svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Log-Level"},
		}))
	}
	r.Use(MetricsMiddleware)

	r.Post("/models", handleInitModel(svc))
	r.Get("/models", handleListContexts(svc))
	r.Delete("/models/{handle}", handleFreeModel(svc))
	r.Post("/generate", handleGenerate(svc))
	r.Get("/catalog", handleCatalog(svc))
	r.Get("/status", handleStatus(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// handleInitModel godoc
// @Summary  Initialize a model context
// @Accept   json
// @Produce  json
// @Param    request body types.InitRequest true "model path"
// @Success  201 {object} types.InitResponse
// @Failure  400 {object} types.ErrorResponse
// @Failure  422 {object} types.ErrorResponse
// @Router   /models [post]
func handleInitModel(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.InitRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Path) == "" {
			writeJSONError(w, http.StatusBadRequest, "path is required")
			return
		}
		h := svc.InitModel(req.Path)
		if h == 0 {
			writeJSONError(w, http.StatusUnprocessableEntity, "model init failed")
			return
		}
		writeJSON(w, http.StatusCreated, types.InitResponse{Handle: h})
	}
}

// handleListContexts godoc
// @Summary  List live model contexts
// @Produce  json
// @Success  200 {array} types.ContextStatus
// @Router   /models [get]
func handleListContexts(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Contexts())
	}
}

// handleFreeModel godoc
// @Summary  Free a model context
// @Param    handle path int true "context handle"
// @Success  204
// @Failure  400 {object} types.ErrorResponse
// @Router   /models/{handle} [delete]
func handleFreeModel(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := strconv.ParseInt(chi.URLParam(r, "handle"), 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid handle")
			return
		}
		// Freeing an unknown handle is a safe no-op, so this cannot fail.
		svc.FreeModel(h)
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleGenerate godoc
// @Summary  Generate a structured response for a prompt
// @Accept   json
// @Produce  json
// @Param    request body types.GenerateRequest true "generation request"
// @Success  200 {object} types.Response
// @Failure  400 {object} types.ErrorResponse
// @Router   /generate [post]
func handleGenerate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		logGenerateStart(r, lvl, req)

		// Join server base context with request context so shutdown
		// cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		if !req.Stream {
			resp := svc.GenerateStream(joinedCtx, req, nil)
			writeJSON(w, http.StatusOK, resp)
			logGenerateEnd(r, lvl, resp, time.Since(start))
			return
		}

		// NDJSON: one line per chunk, then the final response line.
		w.Header().Set("Content-Type", "application/x-ndjson")
		var flush func()
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		sink := bridge.SinkFunc(func(chunk string) error {
			if err := writeNDJSONLine(w, map[string]any{"chunk": chunk}); err != nil {
				return err
			}
			if flush != nil {
				flush()
			}
			return nil
		})
		resp := svc.GenerateStream(joinedCtx, req, sink)
		_ = writeNDJSONLine(w, resp)
		if flush != nil {
			flush()
		}
		logGenerateEnd(r, lvl, resp, time.Since(start))
	}
}

// handleCatalog godoc
// @Summary  List model files discoverable on disk
// @Produce  json
// @Success  200 {object} types.CatalogResponse
// @Failure  500 {object} types.ErrorResponse
// @Router   /catalog [get]
func handleCatalog(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := svc.Catalog()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.CatalogResponse{Models: models})
	}
}

// handleStatus godoc
// @Summary  Bridge status snapshot
// @Produce  json
// @Success  200 {object} types.StatusResponse
// @Router   /status [get]
func handleStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	}
}
