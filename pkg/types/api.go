package types

// InitRequest is the payload for POST /models.
type InitRequest struct {
	// Path to the model file to load.
	// example: /home/user/models/phi-2.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/phi-2.Q4_K_M.gguf"`
}

// InitResponse wraps the handle returned by POST /models.
type InitResponse struct {
	// Opaque context handle; 0 never appears here (init failure is an error status).
	// example: 1
	Handle int64 `json:"handle" example:"1"`
}

// ContextStatus summarizes one live model context for GET /models and /status.
type ContextStatus struct {
	// Context handle.
	// example: 1
	Handle int64 `json:"handle" example:"1"`
	// Source path the context was created from.
	// example: /home/user/models/phi-2.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/phi-2.Q4_K_M.gguf"`
	// Whether the model weights are loaded (always true in the stub).
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// Context window size in tokens.
	// example: 2048
	ContextSize int `json:"context_size" example:"2048"`
	// Worker threads for generation.
	// example: 4
	Threads int `json:"threads" example:"4"`
	// Creation time in unix seconds.
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Live contexts ordered by handle.
	Contexts []ContextStatus `json:"contexts"`
	// Name of the active generation engine.
	// example: keyword
	Engine string `json:"engine" example:"keyword"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// CatalogResponse wraps the list of discoverable model files.
type CatalogResponse struct {
	Models []ModelFile `json:"models"`
}

// ModelFile describes a loadable model file found on disk.
type ModelFile struct {
	// Stable identifier (the filename).
	// example: phi-2.Q4_K_M.gguf
	ID string `json:"id" example:"phi-2.Q4_K_M.gguf"`
	// Human-friendly name.
	// example: phi-2.Q4_K_M.gguf
	Name string `json:"name" example:"phi-2.Q4_K_M.gguf"`
	// Absolute path on disk.
	// example: /home/user/models/phi-2.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/phi-2.Q4_K_M.gguf"`
	// File size in MB.
	// example: 1600
	SizeMB int64 `json:"size_mb" example:"1600"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
