package dto

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	SessionId string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

type ChatResponse struct {
	Ok      bool   `json:"ok"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
	Session string `json:"session_id,omitempty"`
}

// ChatEvent is one SSE frame of the streaming answer. Type is one of
// start | token | log | tool | end.
type ChatEvent struct {
	Type    string `json:"type"`
	Delta   string `json:"delta,omitempty"`
	Channel string `json:"channel,omitempty"`
	Message string `json:"message,omitempty"`
	Tool    string `json:"tool,omitempty"`
	Title   string `json:"title,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Event constructors keep the frame shapes in one place.

func StartEvent() ChatEvent { return ChatEvent{Type: "start"} }

func TokenEvent(delta string) ChatEvent { return ChatEvent{Type: "token", Delta: delta} }

func LogEvent(channel, message string) ChatEvent {
	return ChatEvent{Type: "log", Channel: channel, Message: message}
}

func ToolEvent(tool, title string, payload any) ChatEvent {
	return ChatEvent{Type: "tool", Tool: tool, Title: title, Payload: payload}
}

func EndEvent() ChatEvent { return ChatEvent{Type: "end"} }
