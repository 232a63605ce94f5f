package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RonikAgarwal/Swasthi/internal/events"
	"github.com/RonikAgarwal/Swasthi/internal/messaging/kafka/consumer"
	"github.com/RonikAgarwal/Swasthi/internal/notify"
	"github.com/RonikAgarwal/Swasthi/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer drains workflow lifecycle events into outbound notifications.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	var notifier notify.Notifier = notify.NewKafkaNotifier(kafkaWriter, logger)
	if os.Getenv("NOTIFY_MODE") == "log" {
		notifier = notify.NewLogNotifier(logger)
	}

	cardReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.CardRegisteredTopic,
		GroupID:        "swasthi-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer cardReader.Close()

	checkReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.WorkerCheckTopic,
		GroupID:        "swasthi-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer checkReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeCardLifecycle(ctx, cardReader, notifier, logger)
	go consumer.ConsumeWorkerChecks(ctx, checkReader, notifier, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
