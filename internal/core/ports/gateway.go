package ports

import (
	"context"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

// GenerateInput carries a natural-language request for new code.
type GenerateInput struct {
	Prompt    string
	Language  string
	Context   string
	MaxTokens int
}

// CodeInput carries an existing snippet for analysis-style tasks.
// ErrorMessage is used by debug, Detail carries the refactor type,
// test framework or documentation type depending on the task.
type CodeInput struct {
	Code         string
	Language     string
	Context      string
	ErrorMessage string
	Detail       string
}

// ChatInput carries one conversational turn.
type ChatInput struct {
	Message        string
	Language       string
	Code           string
	ConversationID string
}

// Gateway is the single entry point to the external model capability.
// Implementations own prompt construction, retries on transient failures and
// coercion of free-text replies into the closed set of result types. A reply
// that cannot be parsed yields a degraded-but-present result, never an error;
// errors are reserved for provider failures.
type Gateway interface {
	Generate(ctx context.Context, in GenerateInput) (*domain.GenerationResult, error)
	Debug(ctx context.Context, in CodeInput) (*domain.DebugResult, error)
	SecurityScan(ctx context.Context, in CodeInput) (*domain.SecurityResult, error)
	Review(ctx context.Context, in CodeInput) (*domain.ReviewResult, error)
	Refactor(ctx context.Context, in CodeInput) (*domain.RefactorResult, error)
	GenerateTests(ctx context.Context, in CodeInput) (*domain.TestResult, error)
	Optimize(ctx context.Context, in CodeInput) (*domain.OptimizationResult, error)
	Document(ctx context.Context, in CodeInput) (*domain.DocumentationResult, error)
	Chat(ctx context.Context, in ChatInput) (*domain.ChatResult, error)
	ClearChat(conversationID string)
}
