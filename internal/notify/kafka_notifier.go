package notify

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const NotificationsTopic = "swasthi.notifications.v1"

type notificationMessage struct {
	Recipient  string            `json:"recipient"`
	TemplateID string            `json:"template_id"`
	Payload    map[string]string `json:"payload,omitempty"`
	QueuedAt   time.Time         `json:"queued_at"`
}

// KafkaNotifier hands notifications to the delivery gateway through the
// notifications topic.
type KafkaNotifier struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewKafkaNotifier(writer *kafkago.Writer, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: writer,
		logger: logger.Named("notify.kafka"),
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, recipient, templateID string, payload map[string]string) error {
	value, err := json.Marshal(notificationMessage{
		Recipient:  recipient,
		TemplateID: templateID,
		Payload:    payload,
		QueuedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = n.writer.WriteMessages(ctx, kafkago.Message{
		Topic: NotificationsTopic,
		Key:   []byte(recipient),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "template_id", Value: []byte(templateID)},
		},
	})
	if err != nil {
		n.logger.Error("write notification failed",
			zap.String("recipient", recipient),
			zap.String("template_id", templateID),
			zap.Error(err),
		)
		return err
	}

	n.logger.Info("notification queued",
		zap.String("recipient", recipient),
		zap.String("template_id", templateID),
	)
	return nil
}
