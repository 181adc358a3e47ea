package insight

import "context"

// TextGenerator produces natural-language text from a prompt. Backed
// by any OpenAI-compatible chat completion endpoint, or a canned stub
// when the feature is disabled.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
