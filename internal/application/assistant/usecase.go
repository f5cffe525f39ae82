package assistant

import (
	"context"
	"time"

	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/application/ports"
	"github.com/jcastano/despensa-api/pkg/logger"
)

const chatTimeout = 30 * time.Second

const systemPrompt = `Eres el asistente de una despensa doméstica. Ayudas a los miembros del hogar a consultar y actualizar su inventario: agregar productos, consumir, trasladar entre ubicaciones, marcar envases abiertos, revisar vencimientos y armar la lista de compras.

Reglas:
- Usa las herramientas disponibles para leer o modificar el inventario; nunca inventes cantidades ni fechas.
- Como máximo una herramienta por turno. Si la petición requiere varios pasos, ejecuta el primero y explica qué sigue.
- Las fechas de vencimiento van en formato YYYY-MM-DD.
- Responde siempre en español, breve y concreto.`

// ChatUseCase orquesta una conversación con el modelo: primera llamada con el
// catálogo de herramientas, ejecución de a lo sumo una herramienta, y una
// segunda llamada sin herramientas para redactar la respuesta final.
type ChatUseCase struct {
	llm      ports.LLMService
	executor *Executor
	log      *logger.Logger
}

// NewChatUseCase construye el caso de uso del asistente.
func NewChatUseCase(llm ports.LLMService, executor *Executor, log *logger.Logger) *ChatUseCase {
	return &ChatUseCase{llm: llm, executor: executor, log: log}
}

// Chat procesa un mensaje del usuario dentro del hogar indicado.
func (uc *ChatUseCase) Chat(ctx context.Context, householdID string, in dto.ChatRequest) (*dto.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	messages := make([]ports.LLMMessage, 0, len(in.History)+1)
	for _, m := range in.History {
		messages = append(messages, ports.LLMMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ports.LLMMessage{Role: "user", Content: in.Message})

	first, err := uc.llm.CreateMessage(ctx, ports.LLMRequest{
		System:   systemPrompt,
		Messages: messages,
		Tools:    Catalog(),
	})
	if err != nil {
		return nil, err
	}
	if first.ToolCall == nil {
		return &dto.ChatResponse{Reply: first.Text}, nil
	}

	result := uc.runTool(ctx, householdID, first.ToolCall)

	// Segunda vuelta sin herramientas: el modelo solo redacta la respuesta.
	messages = append(messages,
		ports.LLMMessage{Role: "assistant", Content: first.Text, ToolCall: first.ToolCall},
		ports.LLMMessage{Role: "user", ToolResult: result},
	)
	second, err := uc.llm.CreateMessage(ctx, ports.LLMRequest{
		System:   systemPrompt,
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatResponse{Reply: second.Text, ToolUsed: first.ToolCall.Name}
	if !result.IsError {
		resp.ToolResult = result.Content
	}
	return resp, nil
}

// runTool parsea y ejecuta la llamada; los fallos se devuelven al modelo como
// tool_result de error para que pueda explicarlos al usuario.
func (uc *ChatUseCase) runTool(ctx context.Context, householdID string, tc *ports.LLMToolCall) *ports.LLMToolResult {
	call, err := ParseToolCall(tc.Name, tc.Arguments)
	if err != nil {
		uc.log.Warn().Err(err).Str("tool", tc.Name).Msg("llamada de herramienta inválida")
		return &ports.LLMToolResult{CallID: tc.ID, Content: err.Error(), IsError: true}
	}
	out, err := uc.executor.Execute(ctx, householdID, call)
	if err != nil {
		uc.log.Warn().Err(err).Str("tool", tc.Name).Msg("herramienta falló")
		return &ports.LLMToolResult{CallID: tc.ID, Content: err.Error(), IsError: true}
	}
	return &ports.LLMToolResult{CallID: tc.ID, Content: out}
}
