package identity

import (
	"context"

	"github.com/bizhub/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// Notifier delivers invite messages. Actual email/Slack delivery lives
// behind this seam; the default implementation just logs.
type Notifier interface {
	SendInvite(ctx context.Context, invite *identity.Invite, businessName string) error
}

// LogNotifier records the invite in the application log instead of
// sending anything. Used in development and as the default wiring.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendInvite(ctx context.Context, invite *identity.Invite, businessName string) error {
	n.logger.Info("Invite notification",
		zap.String("email", invite.Email),
		zap.String("business", businessName),
		zap.String("role", string(invite.Role)),
		zap.Time("expires_at", invite.ExpiresAt),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
