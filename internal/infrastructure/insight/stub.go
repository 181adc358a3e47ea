package insight

import (
	"context"

	insightapp "github.com/bizhub/backend/internal/application/insight"
)

var _ insightapp.TextGenerator = (*StubGenerator)(nil)

// StubGenerator returns a fixed message. Used when the insight feature
// is disabled in configuration.
type StubGenerator struct {
	Message string
}

func NewStubGenerator() *StubGenerator {
	return &StubGenerator{Message: "Insights are not available right now."}
}

func (s *StubGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.Message, nil
}
