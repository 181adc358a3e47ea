package event

import (
	"context"

	"github.com/bizhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler records every domain event to the application log. It
// subscribes with no event types, so it sees everything the services
// publish: onboarding, invites, payroll batch lifecycle.
type AuditLogHandler struct {
	logger *zap.Logger
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)

func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("Domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("business_id", event.BusinessID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

func (h *AuditLogHandler) EventTypes() []string {
	return nil
}
