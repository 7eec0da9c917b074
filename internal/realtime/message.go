package realtime

// Inbound frames carry the same task vocabulary as the HTTP router; outbound
// frames are {type, data} envelopes.

const (
	ActionGenerate = "generate"
	ActionDebug    = "debug"
	ActionSecurity = "security"
)

const (
	TypeGeneration = "generation"
	TypeDebugging  = "debugging"
	TypeSecurity   = "security"
	TypeError      = "error"
)

// TaskFrame is one inbound realtime message.
type TaskFrame struct {
	Action       string `json:"action"`
	Prompt       string `json:"prompt,omitempty"`
	Code         string `json:"code,omitempty"`
	Language     string `json:"language,omitempty"`
	Context      string `json:"context,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ResultFrame is one outbound realtime message.
type ResultFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type errorData struct {
	Detail string `json:"detail"`
}
