package dto

// ChatMessage un turno de la conversación con el asistente.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest body para POST /api/assistant/chat.
type ChatRequest struct {
	Message string        `json:"message" validate:"required,min=1"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse respuesta del asistente. Si ejecutó una herramienta, ToolUsed
// y ToolResult describen la llamada para que la UI refresque el inventario.
type ChatResponse struct {
	Reply      string `json:"reply"`
	ToolUsed   string `json:"tool_used,omitempty"`
	ToolResult string `json:"tool_result,omitempty"`
}
