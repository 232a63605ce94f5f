package consumer

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/RonikAgarwal/Swasthi/internal/events"
	"github.com/RonikAgarwal/Swasthi/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeWorkerChecks relays continuous-leave alerts to the health desk.
func ConsumeWorkerChecks(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notify.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.worker_check")
	log.Info("worker check consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("worker check consumer stopped")
				return
			}
			log.Error("fetch worker check message failed", zap.Error(err))
			continue
		}

		var event events.WorkerCheckRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode worker_check_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = notifier.Notify(ctx, notify.RecipientHealthDesk, notify.TemplateWorkerCheck, map[string]string{
			"employee_id":       event.EmployeeID,
			"continuous_leaves": strconv.Itoa(event.ContinuousLeaves),
		})
		if err != nil {
			log.Error("worker check notification failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit worker check message failed", zap.Error(err))
			continue
		}

		log.Info("worker check notification processed",
			zap.String("employee_id", event.EmployeeID),
			zap.Int("continuous_leaves", event.ContinuousLeaves),
		)
	}
}
