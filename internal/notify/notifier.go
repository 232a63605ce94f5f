package notify

import (
	"context"

	"go.uber.org/zap"
)

// Fixed recipient and template ids for workflow notifications. The actual
// delivery channel (mail gateway, SMS bridge) sits behind the notifications
// topic and is outside this service.
const (
	RecipientHealthDesk = "health-desk@swasthi.example"

	TemplateCardRegistered = "card_registered"
	TemplateWorkerCheck    = "worker_check"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock

// Notifier sends an outbound message. Best-effort: callers must log
// failures and carry on, never roll back state because a send failed.
type Notifier interface {
	Notify(ctx context.Context, recipient, templateID string, payload map[string]string) error
}

// LogNotifier is the local-dev fallback when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify.log")}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient, templateID string, payload map[string]string) error {
	n.logger.Info("notification",
		zap.String("recipient", recipient),
		zap.String("template_id", templateID),
		zap.Any("payload", payload),
	)
	return nil
}
