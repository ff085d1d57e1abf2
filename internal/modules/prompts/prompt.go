package prompts

import "github.com/yungbote/nexus-backend/internal/platform/llm"

// Prompt is a rendered template.
type Prompt struct {
	Name    string
	Version int
	System  string
	User    string
}

// Request is the single-turn backend request for p.
func (p Prompt) Request() llm.Request {
	return llm.Prompt(p.System, p.User)
}

// Conversation replays history after the persona preamble. When history is
// empty or ends with an AI turn, the rendered user text is appended as the
// nudge that asks the backend to continue.
func (p Prompt) Conversation(history []llm.Message) llm.Request {
	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	if len(msgs) == 0 || msgs[len(msgs)-1].Role != llm.RoleUser {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: p.User})
	}
	return llm.Request{System: p.System, Messages: msgs}
}
