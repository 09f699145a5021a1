package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
)

// jobRepository хранит задачи в памяти процесса.
// go-cache потокобезопасен сам по себе, но переход pending -> completed - это
// чтение и запись, поэтому все операции дополнительно сериализуются мьютексом.
type jobRepository struct {
	mu        sync.Mutex
	jobs      *cache.Cache
	retention time.Duration
}

// NewJobRepository создаёт хранилище задач. retention > 0 включает удаление
// завершённых задач через указанное время; pending задачи не истекают никогда.
func NewJobRepository(retention time.Duration) repository.JobRepository {
	cleanupInterval := time.Duration(0)
	if retention > 0 {
		cleanupInterval = retention
	}

	return &jobRepository{
		jobs:      cache.New(cache.NoExpiration, cleanupInterval),
		retention: retention,
	}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.SearchJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := pendingRecord(job, 1)
	if err := r.jobs.Add(record.ID, record, cache.NoExpiration); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrJobExists, record.ID)
	}
	job.Revision = record.Revision
	return nil
}

func (r *jobRepository) Replace(ctx context.Context, job *domain.SearchJob) (*domain.SearchJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var previous *domain.SearchJob
	revision := 1
	if current, err := r.get(job.ID); err == nil {
		previous = current.Clone()
		revision = current.Revision + 1
	}

	record := pendingRecord(job, revision)
	r.jobs.Set(record.ID, record, cache.NoExpiration)
	job.Revision = record.Revision
	return previous, nil
}

func (r *jobRepository) Complete(ctx context.Context, id string, revision int, result []domain.City, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.get(id)
	if err != nil {
		return err
	}
	if current.Revision != revision {
		return fmt.Errorf("%w: %s revision %d (current %d)", domain.ErrJobSuperseded, id, revision, current.Revision)
	}
	if current.IsCompleted() {
		return fmt.Errorf("%w: %s", domain.ErrJobAlreadyCompleted, id)
	}

	// Запись в кеше не мутируется: читатели могли получить её раньше
	updated := current.Clone()
	updated.Status = domain.JobStatusCompleted
	updated.Result = make([]domain.City, len(result))
	copy(updated.Result, result)
	updated.CompletedAt = completedAt

	expiration := cache.NoExpiration
	if r.retention > 0 {
		expiration = r.retention
	}
	r.jobs.Set(id, updated, expiration)
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string, revision int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.get(id)
	if err != nil {
		return err
	}
	if current.Revision != revision {
		return fmt.Errorf("%w: %s revision %d (current %d)", domain.ErrJobSuperseded, id, revision, current.Revision)
	}

	r.jobs.Delete(id)
	return nil
}

func (r *jobRepository) Get(ctx context.Context, id string) (*domain.SearchJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return job.Clone(), nil
}

func (r *jobRepository) Stats(ctx context.Context) domain.JobStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats domain.JobStats
	for _, item := range r.jobs.Items() {
		if item.Object.(*domain.SearchJob).IsCompleted() {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}

func (r *jobRepository) get(id string) (*domain.SearchJob, error) {
	value, ok := r.jobs.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	return value.(*domain.SearchJob), nil
}

func pendingRecord(job *domain.SearchJob, revision int) *domain.SearchJob {
	record := job.Clone()
	record.Revision = revision
	record.Status = domain.JobStatusPending
	record.Result = nil
	record.CompletedAt = time.Time{}
	return record
}
