package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"llmbridge/internal/bridge"
	"llmbridge/pkg/types"
)

type mockService struct {
	initHandle int64
	contexts   []types.ContextStatus
	status     types.StatusResponse
	catalog    []types.ModelFile
	catalogErr error
	ready      bool

	freed []int64
	resp  types.Response
	chunk string // pushed to the sink when non-empty
}

func (m *mockService) InitModel(path string) int64 { return m.initHandle }
func (m *mockService) GenerateStream(ctx context.Context, req types.GenerateRequest, sink bridge.ChunkSink) types.Response {
	if sink != nil && m.chunk != "" {
		_ = sink.Push(m.chunk)
	}
	return m.resp
}
func (m *mockService) FreeModel(h int64)                      { m.freed = append(m.freed, h) }
func (m *mockService) Contexts() []types.ContextStatus        { return m.contexts }
func (m *mockService) Status() types.StatusResponse           { return m.status }
func (m *mockService) Catalog() ([]types.ModelFile, error)    { return m.catalog, m.catalogErr }
func (m *mockService) Ready() bool                            { return m.ready }

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestInitModelHandler(t *testing.T) {
	svc := &mockService{initHandle: 7}
	r := NewMux(svc)
	w := postJSON(t, r, "/models", `{"path":"/models/a.gguf"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp types.InitResponse
	if err := types.JSON.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Handle != 7 {
		t.Fatalf("handle=%d", resp.Handle)
	}
}

func TestInitModelValidation(t *testing.T) {
	svc := &mockService{initHandle: 1}
	r := NewMux(svc)
	if w := postJSON(t, r, "/models", `{"path":"  "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("blank path: status=%d", w.Code)
	}
	if w := postJSON(t, r, "/models", `{bad json`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", w.Code)
	}
	// missing content type
	req := httptest.NewRequest(http.MethodPost, "/models", bytes.NewBufferString(`{"path":"x"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("no content-type: status=%d", w.Code)
	}
}

func TestInitModelFailureMapsTo422(t *testing.T) {
	svc := &mockService{initHandle: 0}
	r := NewMux(svc)
	w := postJSON(t, r, "/models", `{"path":"/nope.gguf"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", w.Code)
	}
	var er types.ErrorResponse
	if err := types.JSON.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != http.StatusUnprocessableEntity {
		t.Fatalf("payload code=%d", er.Code)
	}
}

func TestFreeModelHandler(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	req := httptest.NewRequest(http.MethodDelete, "/models/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if len(svc.freed) != 1 || svc.freed[0] != 42 {
		t.Fatalf("freed=%v", svc.freed)
	}

	req = httptest.NewRequest(http.MethodDelete, "/models/notanumber", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGenerateHandler(t *testing.T) {
	svc := &mockService{resp: types.Reply("hello")}
	r := NewMux(svc)
	w := postJSON(t, r, "/generate", `{"handle":1,"prompt":"hi","max_tokens":16}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp types.Response
	if err := types.JSON.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Action != types.ActionReply || resp.Message != "hello" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	svc := &mockService{resp: types.Reply("x")}
	r := NewMux(svc)
	if w := postJSON(t, r, "/generate", `{"handle":1,"prompt":"  "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestGenerateStreamNDJSON(t *testing.T) {
	svc := &mockService{resp: types.Reply("final"), chunk: "final"}
	r := NewMux(svc)
	w := postJSON(t, r, "/generate", `{"handle":1,"prompt":"hi","stream":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "ndjson") {
		t.Fatalf("content-type=%s", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected chunk line + final line, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], `"chunk"`) {
		t.Fatalf("first line is not a chunk: %s", lines[0])
	}
	var final types.Response
	if err := types.JSON.Unmarshal([]byte(lines[1]), &final); err != nil {
		t.Fatalf("final line: %v", err)
	}
	if final.Message != "final" {
		t.Fatalf("final=%+v", final)
	}
}

func TestStatusAndContexts(t *testing.T) {
	svc := &mockService{
		contexts: []types.ContextStatus{{Handle: 1, Path: "a"}},
		status:   types.StatusResponse{Engine: "keyword"},
	}
	r := NewMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("models status=%d", w.Code)
	}
	var ctxs []types.ContextStatus
	if err := types.JSON.Unmarshal(w.Body.Bytes(), &ctxs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(ctxs) != 1 || ctxs[0].Handle != 1 {
		t.Fatalf("ctxs=%+v", ctxs)
	}

	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status status=%d", w.Code)
	}
	var st types.StatusResponse
	if err := types.JSON.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.Engine != "keyword" {
		t.Fatalf("st=%+v", st)
	}
}

func TestHealthAndReady(t *testing.T) {
	svc := &mockService{ready: false}
	r := NewMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz=%d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz=%d", w.Code)
	}

	svc.ready = true
	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("readyz=%d", w.Code)
	}
}

func TestCatalogHandler(t *testing.T) {
	svc := &mockService{catalog: []types.ModelFile{{ID: "a.gguf"}}}
	r := NewMux(svc)
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var cat types.CatalogResponse
	if err := types.JSON.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(cat.Models) != 1 || cat.Models[0].ID != "a.gguf" {
		t.Fatalf("catalog=%+v", cat)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	// Drive one request through the middleware so the counter vec has a
	// child to expose.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "llmbridge_http_requests_total") {
		t.Fatalf("metrics body missing counters")
	}
}
