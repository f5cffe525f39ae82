package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jcastano/despensa-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiService adaptador que implementa LLMService llamando a la API REST de
// Google Gemini con function calling.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	Tools             []geminiToolDeclaration `json:"tools,omitempty"`
	GenerationConfig  genConfig               `json:"generationConfig"`
}

type geminiToolDeclaration struct {
	FunctionDeclarations []geminiFunction `json:"functionDeclarations"`
}

type geminiFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

type geminiFunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// CreateMessage envía la conversación a Gemini. Un functionCall en la
// respuesta se traduce a la primera llamada de herramienta del puerto.
func (s *GeminiService) CreateMessage(ctx context.Context, in ports.LLMRequest) (*ports.LLMResponse, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		Contents: toGeminiContents(in.Messages),
		GenerationConfig: genConfig{
			Temperature:     0.2, // baja temperatura para respuestas más deterministas
			MaxOutputTokens: 1024,
		},
	}
	if in.System != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: in.System}}}
	}
	if len(in.Tools) > 0 {
		decl := geminiToolDeclaration{}
		for _, t := range in.Tools {
			decl.FunctionDeclarations = append(decl.FunctionDeclarations, geminiFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			})
		}
		payload.Tools = []geminiToolDeclaration{decl}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	out := &ports.LLMResponse{}
	for _, part := range gemResp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.Text += part.Text
		}
		if part.FunctionCall != nil && out.ToolCall == nil {
			out.ToolCall = &ports.LLMToolCall{
				// Gemini no asigna identificador a la llamada; se usa el nombre.
				ID:        part.FunctionCall.Name,
				Name:      part.FunctionCall.Name,
				Arguments: part.FunctionCall.Args,
			}
		}
	}
	return out, nil
}

// toGeminiContents traduce los turnos del puerto. El rol assistant se llama
// "model" en Gemini; un tool_result se envía como functionResponse en un
// turno user.
func toGeminiContents(msgs []ports.LLMMessage) []geminiContent {
	out := make([]geminiContent, 0, len(msgs))
	for _, m := range msgs {
		role := m.Role
		if role == "assistant" {
			role = "model"
		}
		gc := geminiContent{Role: role}
		if m.Content != "" {
			gc.Parts = append(gc.Parts, geminiPart{Text: m.Content})
		}
		if m.ToolCall != nil {
			args := m.ToolCall.Arguments
			if len(args) == 0 {
				args = json.RawMessage(`{}`)
			}
			gc.Parts = append(gc.Parts, geminiPart{
				FunctionCall: &geminiFunctionCall{Name: m.ToolCall.Name, Args: args},
			})
		}
		if m.ToolResult != nil {
			response := map[string]any{"content": m.ToolResult.Content}
			if m.ToolResult.IsError {
				response["error"] = true
			}
			gc.Parts = append(gc.Parts, geminiPart{
				FunctionResponse: &geminiFunctionResponse{Name: m.ToolResult.CallID, Response: response},
			})
		}
		if len(gc.Parts) == 0 {
			continue
		}
		out = append(out, gc)
	}
	return out
}
