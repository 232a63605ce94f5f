package consumer

import (
	"context"
	"encoding/json"

	"github.com/RonikAgarwal/Swasthi/internal/events"
	"github.com/RonikAgarwal/Swasthi/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeCardLifecycle turns card_registered events into outbound
// notifications. Notification failures are logged and the message is still
// committed: delivery is best-effort and never replays registration.
func ConsumeCardLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notify.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.card_lifecycle")
	log.Info("card lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("card lifecycle consumer stopped")
				return
			}
			log.Error("fetch card lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.CardRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode card_registered event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = notifier.Notify(ctx, notify.RecipientHealthDesk, notify.TemplateCardRegistered, map[string]string{
			"employee_id":    event.EmployeeID,
			"health_card_id": event.HealthCardID,
		})
		if err != nil {
			log.Error("card registered notification failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("health_card_id", event.HealthCardID),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit card lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("card registered notification processed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("health_card_id", event.HealthCardID),
		)
	}
}
