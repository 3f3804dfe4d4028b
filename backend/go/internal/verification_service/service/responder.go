package service

import (
	"Sceptre/backend/go/internal/knowledge"
	"Sceptre/backend/go/internal/llm"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"
)

// emptyKnowledgeAnswer is returned when the session has gathered no
// evidence yet.
const emptyKnowledgeAnswer = "I don't have enough information to answer. Try refreshing the knowledge base with a specific topic."

// historySummaryThreshold is the conversation length beyond which the
// history is summarized instead of inlined.
const historySummaryThreshold = 4

const answerPrompt = `You are an assistant designed to combat misinformation and promote digital literacy.

Your job is to:
1. Analyze the given content carefully using the provided context.
2. Detect signals of potential misinformation, manipulation, or bias.
3. Explain clearly why the content might be misleading (lack of credible sources, emotional manipulation, logical fallacies, unverifiable claims).
4. Provide fact-based clarification and point the user towards credible sources when available.
Keep the tone supportive, simple, and empowering. Keep your answer under 60 words.

Context (from retrieved documents and sources):
%s

Chat History:
%s

User Question or Content to Verify:
%s

Answer (detailed, fact-aware, and user-friendly):`

const summaryPrompt = "Summarize the following conversation concisely in up to 100 words:\n%s"

// ChatMessage is one turn of the conversation the responder is continuing.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatSource points the user at one document behind an answer.
type ChatSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ChatAnswer is the responder's reply with its supporting documents.
type ChatAnswer struct {
	Answer    string       `json:"answer"`
	Sources   []ChatSource `json:"sources"`
	Timestamp time.Time    `json:"timestamp"`
}

// Responder answers questions grounded in the evidence a session has
// accumulated in its knowledge base.
type Responder struct {
	log       *logger.Logger
	oracle    llm.LLM
	knowledge *knowledge.Manager
}

// NewResponder creates a responder over the given knowledge bases.
func NewResponder(log *logger.Logger, oracle llm.LLM, km *knowledge.Manager) *Responder {
	return &Responder{log: log, oracle: oracle, knowledge: km}
}

// Answer responds to a query using the session's gathered evidence. An
// empty knowledge base yields guidance instead of an unfounded answer.
func (r *Responder) Answer(ctx context.Context, sessionID, query string, history []ChatMessage) (ChatAnswer, error) {
	base := r.knowledge.Base(sessionID)
	if base.IsEmpty() {
		return ChatAnswer{
			Answer:    emptyKnowledgeAnswer,
			Sources:   []ChatSource{},
			Timestamp: time.Now(),
		}, nil
	}

	docs := base.Documents()

	var docContext strings.Builder
	sources := make([]ChatSource, 0, len(docs))
	for i, doc := range docs {
		fmt.Fprintf(&docContext, "Document %d: %s\n\n", i+1, doc.Content)
		sources = append(sources, ChatSource{Title: doc.Title, URL: doc.URL})
	}

	prompt := fmt.Sprintf(answerPrompt, docContext.String(), r.formatHistory(ctx, history), query)
	answer, err := llm.Complete(ctx, r.oracle, prompt)
	if err != nil {
		return ChatAnswer{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	return ChatAnswer{
		Answer:    strings.TrimSpace(answer),
		Sources:   sources,
		Timestamp: time.Now(),
	}, nil
}

// formatHistory renders the conversation for the prompt. Short histories
// are inlined verbatim; longer ones are summarized by the oracle, falling
// back to the last few turns if the summary call fails.
func (r *Responder) formatHistory(ctx context.Context, history []ChatMessage) string {
	if len(history) == 0 {
		return "(no prior conversation)"
	}
	if len(history) <= historySummaryThreshold {
		return renderTurns(history)
	}

	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	summary, err := llm.Complete(ctx, r.oracle, fmt.Sprintf(summaryPrompt, renderTurns(recent)))
	if err != nil {
		r.log.WithPayload(map[string]interface{}{
			"error": err.Error(),
		}).Warn("history summarization failed, inlining recent turns")
		return renderTurns(history[len(history)-historySummaryThreshold:])
	}

	return strings.TrimSpace(summary)
}

func renderTurns(history []ChatMessage) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}
