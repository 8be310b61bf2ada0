//go:build llama

package bridge

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"llmbridge/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaEngine runs real inference through go-llama.cpp. The model is
// loaded per call from the context's path; session reuse across calls
// is future work and does not change the response schema.
type llamaEngine struct{}

// NewLlamaEngine returns the llama.cpp-backed engine.
func NewLlamaEngine() Engine { return llamaEngine{} }

func (llamaEngine) Name() string { return "llama" }

func (llamaEngine) Generate(ctx context.Context, spec ModelSpec, req types.GenerateRequest, sink ChunkSink) (types.Response, error) {
	if strings.TrimSpace(spec.Path) == "" {
		return types.Response{}, errors.New("model path is empty")
	}
	m, err := llama.New(spec.Path, llama.SetContext(spec.ContextSize))
	if err != nil {
		return types.Response{}, err
	}
	defer m.Free()

	// Bridge token streaming to the sink and respect cancellation.
	m.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if sink != nil {
			if err := sink.Push(tok); err != nil {
				return false
			}
		}
		return true
	})

	text, err := m.Predict(req.Prompt, predictOptions(spec, req)...)
	if err != nil {
		if ctx.Err() != nil {
			return types.Response{}, ctx.Err()
		}
		return types.Response{}, err
	}
	return parseModelOutput(text), nil
}

// parseModelOutput interprets the raw completion as a structured
// response when the model emitted one, and wraps anything else in a
// plain reply so the schema holds regardless of model behavior.
func parseModelOutput(text string) types.Response {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		var resp types.Response
		if err := types.JSON.UnmarshalFromString(trimmed, &resp); err == nil && resp.Action != "" {
			if resp.Data == nil {
				resp.Data = map[string]any{}
			}
			return resp
		}
	}
	return types.Reply(trimmed)
}

func predictOptions(spec ModelSpec, req types.GenerateRequest) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetTokens(max(1, req.MaxTokens)),
		llama.SetThreads(max(1, spec.Threads)),
	}
	if req.Temperature > 0 {
		po = append(po, llama.SetTemperature(req.Temperature))
	}
	if req.TopP > 0 {
		po = append(po, llama.SetTopP(req.TopP))
	}
	return po
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
