package llm

import "context"

// GenerateResult is the outcome of one generative call. Exactly one of the
// three collaborator outcomes applies: usable text, a blocked prompt, or a
// transport error (returned as the error value).
type GenerateResult struct {
	Text        string
	Blocked     bool
	BlockReason string
}

// TextGenerator is the generative-text-model collaborator: one call, fully
// composed prompt in, best-effort text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (GenerateResult, error)
}

// ProfileSource is the client-profile collaborator. A failure here never
// aborts extraction; callers proceed with an empty profile block.
type ProfileSource interface {
	ProfileJSON() (string, error)
}
