package worker

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"cloversync/internal/config"
	"cloversync/internal/events"
	"cloversync/internal/logger"
	"cloversync/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.SyncProcessor
}

func New(cfg *config.Config, logger *logger.Logger, processor *processors.SyncProcessor) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(cfg.KafkaBrokers, ","),
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    logger,
		reader:    reader,
		processor: processor,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for order events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if err == context.DeadlineExceeded {
				continue
			}
			if err == io.EOF {
				// Reader closed, worker is stopping.
				return
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		// Each sync gets its own deadline covering the create and print
		// calls.
		processCtx, processCancel := context.WithTimeout(context.Background(), 90*time.Second)
		err = w.processor.Process(processCtx, event)
		processCancel()

		if err != nil {
			w.logger.Error("Failed to process event for order %s: %v", event.OrderID, err)
			continue
		}

		w.logger.Debug("Event processed successfully")
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
