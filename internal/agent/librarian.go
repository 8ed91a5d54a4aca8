package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/llm"
)

const librarianPrompt = `You are a helpful librarian.
Answer the user's question using only the catalog results provided.
If a found title is close to what the user asked for, accept it as the answer.
If several books match, mention all of them.
Be conversational; do not just list attributes.`

// Librarian drives one request through the pipeline: classify, run the
// matching tool, phrase the tool output with one chat-model call, verify.
// Safe for concurrent use; all per-request state stays on the stack.
type Librarian struct {
	tools    *Toolset
	model    llm.ChatModel
	verifier Verifier
	logger   *slog.Logger
}

// NewLibrarian assembles the pipeline. A nil logger falls back to
// slog.Default().
func NewLibrarian(engine CatalogEngine, model llm.ChatModel, verifier Verifier, logger *slog.Logger) *Librarian {
	if logger == nil {
		logger = slog.Default()
	}
	return &Librarian{
		tools:    NewToolset(engine),
		model:    model,
		verifier: verifier,
		logger:   logger,
	}
}

// HandleQuery answers one user utterance. Tool failures propagate as
// errors; a chat-model failure after a successful tool run degrades to the
// raw tool output instead, facts over fluency.
func (l *Librarian) HandleQuery(ctx context.Context, text string) (string, error) {
	route := Classify(text)
	l.logger.Debug("routed query", "route", route, "query", text)

	var toolOutput string
	var err error
	switch route {
	case RouteAggregate:
		toolOutput, err = l.tools.DatabaseStats(ctx)
	default:
		toolOutput, err = l.tools.SearchBooks(ctx, text)
	}
	if err != nil {
		return "", err
	}

	history := []llm.Message{
		llm.NewUserMessage(text),
		llm.NewUserMessage("Catalog results:\n" + toolOutput),
	}

	draft := l.phrase(ctx, history)
	if draft == "" {
		draft = toolOutput
	}

	return l.verifier.Verify(ctx, draft, history)
}

// phrase asks the chat model for a conversational rendering of the tool
// output. Returns "" when the model is unavailable or answers blank.
func (l *Librarian) phrase(ctx context.Context, history []llm.Message) string {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.NewSystemMessage(librarianPrompt))
	messages = append(messages, history...)

	resp, err := l.model.Complete(ctx, llm.CompletionRequest{Messages: messages})
	if err != nil {
		l.logger.Warn("chat model unavailable, answering with raw tool output", "error", err)
		return ""
	}
	return strings.TrimSpace(resp.Content)
}
