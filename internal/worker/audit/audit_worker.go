package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/metrics"
	"github.com/cities-geo-service/internal/worker"
)

// Stats - агрегаты по обработанным событиям
type Stats struct {
	Events    int
	Cities    int
	Malformed int
}

// SearchAuditWorker читает события о завершённых поисках и ведёт по ним учёт
type SearchAuditWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	stream        string
	consumerGroup string
	consumerName  string

	mu    sync.Mutex
	stats Stats
}

// NewSearchAuditWorker создает новый SearchAuditWorker
func NewSearchAuditWorker(
	streamRepo repository.StreamRepository,
	stream string,
	consumerGroup string,
	logger *zap.Logger,
) *SearchAuditWorker {
	if stream == "" {
		stream = domain.StreamSearchDone
	}
	hostname, _ := os.Hostname()

	return &SearchAuditWorker{
		BaseWorker:    worker.NewBaseWorker("search-audit", logger),
		streamRepo:    streamRepo,
		stream:        stream,
		consumerGroup: consumerGroup,
		consumerName:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// Start запускает воркер; блокируется до Stop или отмены ctx
func (w *SearchAuditWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting search audit worker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.consumerGroup),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.consumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, w.stream, w.consumerGroup, w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// Stats возвращает копию агрегатов
func (w *SearchAuditWorker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *SearchAuditWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.SearchCompletedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		// ACK битое сообщение чтобы не застревало
		logger.Warn("Failed to parse message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.mu.Lock()
		w.stats.Malformed++
		w.mu.Unlock()
		w.ack(ctx, msg.ID)
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.stats.Cities += event.CityCount
	w.mu.Unlock()
	metrics.EventsConsumed.Inc()

	logger.Info("Search completed",
		zap.String("job_id", event.JobID),
		zap.String("from_id", event.FromID),
		zap.Float64("radius_km", event.RadiusKm),
		zap.Int("cities", event.CityCount),
		zap.Time("completed_at", event.CompletedAt))

	w.ack(ctx, msg.ID)
}

func (w *SearchAuditWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.stream, w.consumerGroup, id); err != nil {
		// не критично - сообщение останется в pending и будет видно в XPENDING
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", id),
			zap.Error(err))
	}
}
