package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/llm"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// VerifyMode selects how the verification step finalizes a draft answer.
type VerifyMode string

const (
	// VerifyModeRewrite lets the model adjust fluency and tone. The
	// rewrite may never introduce "not found" style hedges the draft
	// does not contain and never contradicts the draft.
	VerifyModeRewrite VerifyMode = "rewrite"

	// VerifyModeStamp returns accepted drafts byte-identical with a
	// literal " [Verified]" suffix; rejected drafts are replaced by the
	// model's correction.
	VerifyModeStamp VerifyMode = "stamp"
)

// VerifiedSuffix is appended to accepted drafts in stamp mode.
const VerifiedSuffix = " [Verified]"

// Verifier finalizes a draft answer. Implementations must never suppress
// retrieval results: whatever goes wrong internally, the draft's facts
// survive to the output.
type Verifier interface {
	Verify(ctx context.Context, draft string, history []llm.Message) (string, error)
}

// NewVerifier returns the verifier for the configured mode.
func NewVerifier(mode VerifyMode, model llm.ChatModel, logger *slog.Logger) (Verifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch mode {
	case VerifyModeRewrite, "":
		return &RewriteVerifier{model: model, logger: logger}, nil
	case VerifyModeStamp:
		return &StampVerifier{model: model, logger: logger}, nil
	default:
		return nil, types.NewError(types.LLM_INVALID_CONFIG,
			"unknown verification mode: "+string(mode))
	}
}

// hedgePhrases are the formulations a rewrite may not introduce. The draft
// was produced from real tool output; a verifier claiming nothing was found
// would contradict it.
var hedgePhrases = []string{
	"not found",
	"no relevant books",
	"doesn't exist",
	"does not exist",
	"couldn't find",
	"could not find",
	"no information",
	"unable to find",
}

func containsHedge(text string) bool {
	return containsAny(strings.ToLower(text), hedgePhrases)
}

const rewritePrompt = `You are a verification editor for a librarian.
Rewrite the draft answer for grammar and tone only.
Keep every fact. Do not add, remove, or contradict any book, author, or number.
Never claim that something was not found.`

// RewriteVerifier polishes the draft with one chat-model call. The model
// is advisory: a failed call or a rewrite that violates the hedge contract
// falls back to the unmodified draft.
type RewriteVerifier struct {
	model  llm.ChatModel
	logger *slog.Logger
}

func (v *RewriteVerifier) Verify(ctx context.Context, draft string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.NewSystemMessage(rewritePrompt))
	messages = append(messages, history...)
	messages = append(messages, llm.NewUserMessage("Draft answer:\n"+draft))

	resp, err := v.model.Complete(ctx, llm.CompletionRequest{Messages: messages})
	if err != nil {
		v.logger.Warn("verification rewrite unavailable, keeping draft", "error", err)
		return draft, nil
	}

	rewritten := strings.TrimSpace(resp.Content)
	if rewritten == "" {
		return draft, nil
	}
	if containsHedge(rewritten) && !containsHedge(draft) {
		v.logger.Warn("rewrite introduced a hedge, keeping draft")
		return draft, nil
	}
	return rewritten, nil
}

const stampPrompt = `You are a fact checker for a librarian.
Compare the draft answer against the conversation.
If the draft is consistent with the facts, reply with exactly APPROVE.
Otherwise reply with a corrected answer and nothing else.`

// approveToken is the model's accept signal in stamp mode.
const approveToken = "APPROVE"

// StampVerifier asks the model to accept or correct the draft. Accepted
// drafts come back byte-identical plus the VerifiedSuffix; corrections
// replace the draft. A failed model call keeps the draft, unstamped.
type StampVerifier struct {
	model  llm.ChatModel
	logger *slog.Logger
}

func (v *StampVerifier) Verify(ctx context.Context, draft string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.NewSystemMessage(stampPrompt))
	messages = append(messages, history...)
	messages = append(messages, llm.NewUserMessage("Draft answer:\n"+draft))

	resp, err := v.model.Complete(ctx, llm.CompletionRequest{Messages: messages})
	if err != nil {
		v.logger.Warn("verification check unavailable, keeping draft", "error", err)
		return draft, nil
	}

	verdict := strings.TrimSpace(resp.Content)
	if verdict == "" || strings.EqualFold(verdict, approveToken) {
		return draft + VerifiedSuffix, nil
	}
	return verdict, nil
}
