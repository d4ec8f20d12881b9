// Package coach turns analysis results into natural-language guidance.
// Commentary comes from a configurable LLM backend; a deterministic
// rule-based fallback guarantees the player always gets feedback even
// with no model available.
package coach

import "context"

// LLMClient is the minimal completion interface every backend
// implements.
type LLMClient interface {
	// Complete sends a prompt and returns the completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a prompt with a system message.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// systemPrompt frames every coaching request.
const systemPrompt = `You are a friendly chess coach reviewing a student's game. ` +
	`Explain ideas in plain language appropriate for the student's rating. ` +
	`Be specific about the moves discussed, keep each answer under 120 words, ` +
	`and always end on an encouraging or instructive note.`
