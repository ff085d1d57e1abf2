package llm

import "context"

// Provider is the generation backend capability. Components receive one
// explicitly and never reach for a package-level client.
type Provider interface {
	// Generate sends the conversation to the backend and returns its text.
	// Failures surface as errors matching ErrBackendUnavailable.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System sets the persona and output constraints.
	System string

	// Messages is the ordered conversation. Single-shot generation sends one
	// user message; tutoring chats replay the full thread.
	Messages []Message

	MaxTokens int

	// Temperature in [0,1]. Zero leaves the provider default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Prompt builds a single-turn request.
func Prompt(system, user string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
	}
}

// Response holds the backend's raw text. Callers own parsing.
type Response struct {
	Text       string
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
