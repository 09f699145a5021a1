package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
	"github.com/cities-geo-service/internal/pkg/errors"
	"github.com/cities-geo-service/internal/pkg/geo"
	"github.com/cities-geo-service/internal/pkg/metrics"
	"github.com/cities-geo-service/internal/worker"
)

const (
	// DefaultSearchDelay - задержка перед вычислением результата поиска
	DefaultSearchDelay = 5 * time.Second

	publishTimeout = 3 * time.Second
)

// TaskScheduler - исполнитель отложенных задач (worker.DelayedScheduler)
type TaskScheduler interface {
	ScheduleAfter(delay time.Duration, task worker.Task) error
}

// SearchEventPublisher - получатель событий о завершённых поисках
type SearchEventPublisher interface {
	PublishSearchCompleted(ctx context.Context, event domain.SearchCompletedEvent) error
}

// PinnedJob - фиксированный ID задачи для пары (город, радиус в целых км).
// Нужен для воспроизводимых сценариев: клиент заранее знает URL результата.
type PinnedJob struct {
	FromID   string
	RadiusKm int64
	JobID    string
}

// DefaultPinnedJobs - таблица переопределений, унаследованная от прежнего API
var DefaultPinnedJobs = []PinnedJob{
	{
		FromID:   "ed354fef-31d3-44a9-b92f-4a3bd7eb0408",
		RadiusKm: 250,
		JobID:    "2152f96f-50c7-4d76-9e18-f7033bd14428",
	},
}

type pinnedKey struct {
	fromID   string
	radiusKm int64
}

// RunnerOption - опция JobRunner
type RunnerOption func(*JobRunner)

// WithEventPublisher включает публикацию событий о завершении
func WithEventPublisher(p SearchEventPublisher) RunnerOption {
	return func(r *JobRunner) {
		r.publisher = p
	}
}

// WithPinnedJobs заменяет таблицу фиксированных ID
func WithPinnedJobs(pinned []PinnedJob) RunnerOption {
	return func(r *JobRunner) {
		r.pinned = make(map[pinnedKey]string, len(pinned))
		for _, p := range pinned {
			r.pinned[pinnedKey{fromID: p.FromID, radiusKm: p.RadiusKm}] = p.JobID
		}
	}
}

// WithIDGenerator подменяет генератор ID задач
func WithIDGenerator(gen func() string) RunnerOption {
	return func(r *JobRunner) {
		r.newID = gen
	}
}

// JobRunner - приём и отложенное выполнение поиска городов в радиусе
type JobRunner struct {
	catalog   repository.CityCatalog
	jobs      repository.JobRepository
	scheduler TaskScheduler
	publisher SearchEventPublisher
	logger    *zap.Logger
	delay     time.Duration

	pinned map[pinnedKey]string
	newID  func() string
	now    func() time.Time
}

// NewJobRunner - создание нового JobRunner
func NewJobRunner(
	catalog repository.CityCatalog,
	jobs repository.JobRepository,
	scheduler TaskScheduler,
	logger *zap.Logger,
	delay time.Duration,
	opts ...RunnerOption,
) *JobRunner {
	if delay < 0 {
		delay = DefaultSearchDelay
	}

	r := &JobRunner{
		catalog:   catalog,
		jobs:      jobs,
		scheduler: scheduler,
		logger:    logger,
		delay:     delay,
		newID:     uuid.NewString,
		now:       time.Now,
	}
	WithPinnedJobs(DefaultPinnedJobs)(r)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit регистрирует pending задачу и планирует вычисление; возвращает ID сразу.
// Неизвестный исходный город - ErrCityNotFound, до создания задачи.
func (r *JobRunner) Submit(ctx context.Context, fromID string, radiusKm float64) (string, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return "", errors.ErrInvalidRadius
	}

	origin, ok := r.catalog.FindByID(fromID)
	if !ok {
		return "", errors.ErrCityNotFound
	}

	job := &domain.SearchJob{
		FromID:    fromID,
		RadiusKm:  radiusKm,
		Status:    domain.JobStatusPending,
		CreatedAt: r.now(),
	}

	var (
		previous *domain.SearchJob
		err      error
	)
	if pinnedID, pinned := r.pinned[pinnedKey{fromID: fromID, radiusKm: int64(math.Round(radiusKm))}]; pinned {
		job.ID = pinnedID
		// тот же радиус - тот же результат, повторно не планируем
		if existing, getErr := r.jobs.Get(ctx, pinnedID); getErr == nil && existing.RadiusKm == radiusKm {
			r.logger.Debug("Pinned search job already registered", zap.String("job_id", pinnedID))
			return pinnedID, nil
		}
		// другой радиус в том же окне округления: запись пересчитывается заново
		previous, err = r.jobs.Replace(ctx, job)
	} else {
		job.ID = r.newID()
		err = r.jobs.Create(ctx, job)
	}
	if err != nil {
		r.logger.Error("Failed to register search job",
			zap.String("job_id", job.ID),
			zap.Error(err))
		return "", errors.ErrInternalServer
	}
	replacedPending := previous != nil && !previous.IsCompleted()

	revision := job.Revision
	err = r.scheduler.ScheduleAfter(r.delay, func(ctx context.Context) {
		r.run(ctx, job.ID, revision, origin, radiusKm, job.CreatedAt)
	})
	if err != nil {
		r.logger.Error("Failed to schedule search job",
			zap.String("job_id", job.ID),
			zap.Error(err))
		// без задачи запись навсегда осталась бы pending
		if delErr := r.jobs.Delete(ctx, job.ID, revision); delErr != nil {
			r.logger.Warn("Failed to roll back search job",
				zap.String("job_id", job.ID),
				zap.Error(delErr))
		} else if replacedPending {
			metrics.JobsPending.Dec()
		}
		return "", errors.ErrInternalServer
	}

	metrics.JobsSubmitted.Inc()
	if !replacedPending {
		metrics.JobsPending.Inc()
	}

	r.logger.Info("Search job submitted",
		zap.String("job_id", job.ID),
		zap.Int("revision", revision),
		zap.String("from_id", fromID),
		zap.Float64("radius_km", radiusKm),
		zap.Duration("delay", r.delay))

	return job.ID, nil
}

// Result - неблокирующий опрос: completed -> задача с результатом,
// pending -> ErrResultNotReady, неизвестный ID -> ErrJobNotFound
func (r *JobRunner) Result(ctx context.Context, jobID string) (*domain.SearchJob, error) {
	job, err := r.jobs.Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, errors.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get search job: %w", err)
	}

	if !job.IsCompleted() {
		return nil, errors.ErrResultNotReady
	}
	return job, nil
}

func (r *JobRunner) Stats(ctx context.Context) domain.JobStats {
	return r.jobs.Stats(ctx)
}

// run - отложенная часть поиска, выполняется в пуле планировщика
func (r *JobRunner) run(ctx context.Context, jobID string, revision int, origin domain.City, radiusKm float64, createdAt time.Time) {
	from := origin.Coordinate()

	candidates := r.catalog.Nearby(from, radiusKm)
	result := make([]domain.City, 0, len(candidates))
	for _, city := range candidates {
		if city.GUID == origin.GUID {
			continue
		}
		// сравниваем с опубликованным (округлённым) расстоянием, как /distance
		if geo.DistanceKm(from, city.Coordinate()) <= radiusKm {
			result = append(result, city)
		}
	}

	completedAt := r.now()
	if err := r.jobs.Complete(ctx, jobID, revision, result, completedAt); err != nil {
		if errors.Is(err, domain.ErrJobSuperseded) || errors.Is(err, domain.ErrJobNotFound) {
			r.logger.Info("Search job superseded, result discarded",
				zap.String("job_id", jobID),
				zap.Int("revision", revision))
			return
		}
		r.logger.Error("Failed to complete search job",
			zap.String("job_id", jobID),
			zap.Error(err))
		return
	}

	metrics.JobsPending.Dec()
	metrics.JobsCompleted.Inc()
	metrics.JobLatency.Observe(completedAt.Sub(createdAt).Seconds())
	metrics.JobResultSize.Observe(float64(len(result)))

	r.logger.Info("Search job completed",
		zap.String("job_id", jobID),
		zap.Int("cities", len(result)),
		zap.Int("candidates", len(candidates)))

	if r.publisher == nil {
		return
	}

	event := domain.NewSearchCompletedEvent(&domain.SearchJob{
		ID:          jobID,
		FromID:      origin.GUID,
		RadiusKm:    radiusKm,
		Status:      domain.JobStatusCompleted,
		Result:      result,
		CompletedAt: completedAt,
	})

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := r.publisher.PublishSearchCompleted(pubCtx, event); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		r.logger.Warn("Failed to publish search completed event",
			zap.String("job_id", jobID),
			zap.Error(err))
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}
