package bridge

import (
	"context"

	"llmbridge/internal/classifier"
	"llmbridge/pkg/types"
)

// keywordEngine adapts the intent classifier to the Engine interface.
// It is the default backend: stateless, non-blocking, total.
type keywordEngine struct {
	cls classifier.Keyword
}

// NewKeywordEngine returns the classifier-backed engine.
func NewKeywordEngine() Engine {
	return keywordEngine{cls: classifier.New()}
}

func (keywordEngine) Name() string { return "keyword" }

// Generate classifies the prompt. Streaming degenerates to a single
// final delivery: the whole message is pushed as one chunk before the
// response is returned, which preserves the sink ordering contract.
func (e keywordEngine) Generate(ctx context.Context, _ ModelSpec, req types.GenerateRequest, sink ChunkSink) (types.Response, error) {
	if err := ctx.Err(); err != nil {
		return types.Response{}, err
	}
	resp := e.cls.Classify(req.Prompt, req.MaxTokens)
	if sink != nil {
		if err := sink.Push(resp.Message); err != nil {
			return types.Response{}, err
		}
	}
	return resp, nil
}
