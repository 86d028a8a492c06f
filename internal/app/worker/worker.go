package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	kafka_impl "cms-backend/internal/broker/kafka"
	"cms-backend/internal/config"
	"cms-backend/internal/domain"
	minio_repo "cms-backend/internal/repository/file/minio"
	"cms-backend/internal/usecase/derivative"
	"cms-backend/internal/usecase/pipeline"

	kafka "github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/zlog"
)

// Worker consumes storage finalize events and drives derivative
// generation. Offsets are committed only after a message is fully
// processed, so a crash mid-flight causes redelivery rather than loss.
type Worker struct {
	cfg      *config.Config
	consumer *kafka_impl.ConsumerClient
	pipeline *pipeline.Pipeline
	logger   *zlog.Zerolog
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	fileRepo, err := minio_repo.NewMinIORepository(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	store := derivative.NewStore(fileRepo, logger)

	return &Worker{
		cfg:      cfg,
		consumer: kafka_impl.NewConsumerClient(cfg),
		pipeline: pipeline.NewPipeline(fileRepo, store, logger),
		logger:   logger,
	}, nil
}

func (w *Worker) Run() error {
	concurrency := w.cfg.Worker.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	w.logger.Info().
		Str("topic", w.cfg.Kafka.EventsTopic).
		Str("group", w.cfg.Kafka.GroupID).
		Int("concurrency", concurrency).
		Msg("Starting worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.handleSignals(cancel)

	messages := make(chan kafka.Message, concurrency*2)
	go w.consumer.StartConsuming(ctx, messages, w.cfg.DefaultRetryStrategy())

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.consumeLoop(ctx, id, messages)
		}(i)
	}

	wg.Wait()

	if err := w.consumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close consumer")
	}

	w.logger.Info().Msg("Worker stopped gracefully")
	return nil
}

func (w *Worker) consumeLoop(ctx context.Context, id int, messages <-chan kafka.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := w.safeProcessMessage(ctx, msg); err != nil {
				w.logger.Error().
					Err(err).
					Int("worker", id).
					Int64("offset", msg.Offset).
					Msg("Failed to process message, left uncommitted")
				continue
			}
			if err := w.consumer.Commit(ctx, msg); err != nil {
				w.logger.Error().
					Err(err).
					Int("worker", id).
					Int64("offset", msg.Offset).
					Msg("Failed to commit offset")
			}
		}
	}
}

func (w *Worker) safeProcessMessage(ctx context.Context, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing message: %v", r)
		}
	}()
	return w.processMessage(ctx, msg)
}

func (w *Worker) processMessage(ctx context.Context, msg kafka.Message) error {
	var event domain.StorageEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// Malformed payloads never become parseable; commit and move on.
		w.logger.Error().
			Err(err).
			Int64("offset", msg.Offset).
			Msg("Failed to unmarshal storage event, dropping")
		return nil
	}

	return w.pipeline.Handle(ctx, event)
}

func (w *Worker) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	w.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
