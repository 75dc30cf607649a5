package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/llm"
)

// ErrInvalidRequest means the caller supplied no messages. Rejected before
// any remote call is made.
var ErrInvalidRequest = errors.New("messages array required")

// systemPrompt is the fixed assistant directive. The response-language
// policy (Swedish) is part of the product, not a placeholder.
const systemPrompt = `Du är en kraftfull AI-assistent med full kontroll över användarens projekt.

Du har tillgång till följande verktyg via function calling:
- create_project: Skapar GitHub repo + Vercel deploy
- modify_project_code: Ändrar kod i befintliga projekt
- get_projects: Listar alla projekt
- delete_project: Raderar projekt

När användaren frågar om något, använd rätt verktyg för att utföra uppgiften.
Svara alltid på svenska.`

// Capabilities is the static capability table returned on tool-free turns.
var Capabilities = map[string]map[string]bool{
	"database": {
		"read":   true,
		"write":  true,
		"delete": true,
	},
	"github": {
		"createRepo": true,
		"commit":     true,
		"push":       true,
		"createPR":   true,
	},
	"vercel": {
		"deploy":     true,
		"updateEnv":  true,
		"getDomains": true,
	},
	"codeGeneration": {
		"createProject":   true,
		"modifyCode":      true,
		"chooseTechStack": true,
	},
}

// ModelClient is the remote model collaborator.
type ModelClient interface {
	ChatCompletion(ctx context.Context, messages []llm.Message, tools []llm.Tool) (*llm.Message, error)
}

// ToolExecutor declares and dispatches the assistant's tools.
type ToolExecutor interface {
	Declarations() []llm.Tool
	Execute(ctx context.Context, name, rawArgs string) (any, error)
}

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	Message        string
	FunctionCalled string
	Result         any
	SkippedCalls   []string
	Capabilities   any
}

// ChatService drives one user turn: at most one tool round-trip between two
// model calls.
type ChatService struct {
	model ModelClient
	tools ToolExecutor
}

// NewChatService creates a new chat service
func NewChatService(model ModelClient, tools ToolExecutor) *ChatService {
	return &ChatService{
		model: model,
		tools: tools,
	}
}

// Turn runs one complete request/response cycle. The inbound messages are
// never mutated; the working list is assembled fresh.
func (s *ChatService) Turn(ctx context.Context, messages []llm.Message) (*TurnResult, error) {
	if len(messages) == 0 {
		return nil, ErrInvalidRequest
	}

	working := make([]llm.Message, 0, len(messages)+3)
	working = append(working, llm.Message{Role: "system", Content: systemPrompt})
	working = append(working, messages...)

	assistant, err := s.model.ChatCompletion(ctx, working, s.tools.Declarations())
	if err != nil {
		return nil, err
	}

	if len(assistant.ToolCalls) == 0 {
		return &TurnResult{
			Message:      assistant.Content,
			Capabilities: Capabilities,
		}, nil
	}

	// Single-tool-per-turn: only the first requested call is honored.
	// Extra calls are reported back instead of vanishing silently.
	call := assistant.ToolCalls[0]
	var skipped []string
	for _, extra := range assistant.ToolCalls[1:] {
		skipped = append(skipped, extra.Function.Name)
	}
	if len(skipped) > 0 {
		log.Printf("[chat] model requested %d tool calls, honoring %q only (skipped: %v)",
			len(assistant.ToolCalls), call.Function.Name, skipped)
	}

	result, err := s.tools.Execute(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		return nil, err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}

	working = append(working, *assistant)
	working = append(working, llm.Message{
		Role:       "tool",
		Content:    string(resultJSON),
		ToolCallID: call.ID,
	})

	// Second round offers no tools: one tool round-trip per turn.
	final, err := s.model.ChatCompletion(ctx, working, nil)
	if err != nil {
		return nil, err
	}

	return &TurnResult{
		Message:        final.Content,
		FunctionCalled: call.Function.Name,
		Result:         result,
		SkippedCalls:   skipped,
	}, nil
}
