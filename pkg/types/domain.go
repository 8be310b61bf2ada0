package types

// Action tags a structured response so the managed caller can route it
// to the right piece of business logic without parsing the message text.
type Action string

const (
	ActionReply        Action = "reply"
	ActionCreateGoal   Action = "create_goal"
	ActionCreateTask   Action = "create_task"
	ActionCompleteTask Action = "complete_task"
	ActionShowProgress Action = "show_progress"
)

// Response is the sole generation contract. Every engine, present or
// future, must produce this shape; callers never see anything else.
type Response struct {
	// Action routing tag.
	// example: create_goal
	Action Action `json:"action" example:"create_goal"`
	// Human-readable message for display.
	// example: I'll create a goal for Learn Spanish
	Message string `json:"message" example:"I'll create a goal for Learn Spanish"`
	// Action-specific payload; empty object when the action carries none.
	Data map[string]any `json:"data"`
}

// Reply builds a reply-action response with an empty payload.
func Reply(message string) Response {
	return Response{Action: ActionReply, Message: message, Data: map[string]any{}}
}

// NotLoaded is the fixed response for a generate call against an
// invalid or already-freed handle.
func NotLoaded() Response {
	return Reply("Error: Model not loaded")
}

// NoModel is the fixed response when the legacy facade has no current
// context to resolve.
func NoModel() Response {
	return Reply("No model loaded. Please download a model first.")
}

// GenerateRequest carries one generation call across the bridge.
// Constructed and consumed per call; never persisted.
type GenerateRequest struct {
	// Context handle returned by a prior model init.
	// example: 1
	Handle int64 `json:"handle" example:"1"`
	// Prompt text to classify or complete.
	// example: Create a goal for "Learn Spanish"
	Prompt string `json:"prompt" example:"Create a goal for \"Learn Spanish\""`
	// Maximum number of new tokens to generate.
	// example: 128
	MaxTokens int `json:"max_tokens,omitempty" example:"128"`
	// Sampling temperature (ignored by the keyword engine).
	// example: 0.7
	Temperature float32 `json:"temperature,omitempty" example:"0.7"`
	// Nucleus sampling probability (ignored by the keyword engine).
	// example: 0.9
	TopP float32 `json:"top_p,omitempty" example:"0.9"`
	// If true, the HTTP layer streams chunk lines before the final response.
	// example: false
	Stream bool `json:"stream,omitempty" example:"false"`
}

// ModelInfo is the snapshot returned by the legacy facade's model-info
// call. Field names are part of the managed-side contract.
type ModelInfo struct {
	// example: loaded
	Status string `json:"status" example:"loaded"`
	// example: /data/models/phi-2.Q4_K_M.gguf
	Path string `json:"path" example:"/data/models/phi-2.Q4_K_M.gguf"`
	// example: 2048
	ContextSize int `json:"contextSize" example:"2048"`
	// example: 4
	Threads int `json:"threads" example:"4"`
}
