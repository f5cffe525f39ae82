package ports

import (
	"context"
	"encoding/json"
)

// LLMToolDefinition herramienta expuesta al modelo: nombre, descripción y el
// JSON Schema de sus argumentos.
type LLMToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// LLMToolCall invocación de herramienta solicitada por el modelo.
type LLMToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// LLMToolResult resultado de una herramienta, adjunto al siguiente turno user.
type LLMToolResult struct {
	CallID  string
	Content string
	IsError bool
}

// LLMMessage un turno de la conversación en el protocolo del proveedor.
type LLMMessage struct {
	Role       string // "user" | "assistant"
	Content    string
	ToolCall   *LLMToolCall   // bloque tool_use de un turno assistant
	ToolResult *LLMToolResult // bloque tool_result de un turno user
}

// LLMRequest petición de completado con herramientas opcionales.
type LLMRequest struct {
	System   string
	Messages []LLMMessage
	Tools    []LLMToolDefinition
}

// LLMResponse respuesta del modelo: texto y, como mucho, UNA llamada a
// herramienta (el contrato del asistente es una herramienta por turno).
type LLMResponse struct {
	Text     string
	ToolCall *LLMToolCall
}

// LLMService puerto de salida hacia los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta
// interfaz; siguiendo inversión de dependencias, la aplicación solo conoce
// este contrato, no la implementación concreta. El contexto debe llevar un
// timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	CreateMessage(ctx context.Context, req LLMRequest) (*LLMResponse, error)
}
