package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/repository/memory"
)

func pendingJob(id string) *domain.SearchJob {
	return &domain.SearchJob{
		ID:        id,
		FromID:    "origin",
		RadiusKm:  250,
		Status:    domain.JobStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestJobRepository_CreateGetComplete(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingJob("job-1")))

	job, err := repo.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Nil(t, job.Result)

	result := []domain.City{{GUID: "a"}, {GUID: "b"}}
	completedAt := time.Now()
	require.NoError(t, repo.Complete(ctx, "job-1", 1, result, completedAt))

	job, err = repo.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.True(t, job.IsCompleted())
	assert.Equal(t, result, job.Result)
	assert.Equal(t, completedAt, job.CompletedAt)
	assert.Equal(t, "origin", job.FromID)
}

func TestJobRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingJob("job-1")))

	err := repo.Create(ctx, pendingJob("job-1"))
	assert.ErrorIs(t, err, domain.ErrJobExists)
}

func TestJobRepository_CompleteInvariantViolations(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	err := repo.Complete(ctx, "unknown", 1, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	require.NoError(t, repo.Create(ctx, pendingJob("job-1")))
	require.NoError(t, repo.Complete(ctx, "job-1", 1, []domain.City{{GUID: "a"}}, time.Now()))

	err = repo.Complete(ctx, "job-1", 1, []domain.City{{GUID: "other"}}, time.Now())
	assert.ErrorIs(t, err, domain.ErrJobAlreadyCompleted)

	job, err := repo.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "a", job.Result[0].GUID)
}

func TestJobRepository_GetUnknown(t *testing.T) {
	repo := memory.NewJobRepository(0)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobRepository_ReturnedJobsAreCopies(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	input := pendingJob("job-1")
	require.NoError(t, repo.Create(ctx, input))
	input.Status = domain.JobStatusCompleted

	job, err := repo.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)

	job.Status = domain.JobStatusCompleted
	again, err := repo.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, again.Status)
}

func TestJobRepository_Stats(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, pendingJob(fmt.Sprintf("job-%d", i))))
	}
	require.NoError(t, repo.Complete(ctx, "job-0", 1, nil, time.Now()))

	assert.Equal(t, domain.JobStats{Pending: 2, Completed: 1}, repo.Stats(ctx))
}

func TestJobRepository_RetentionExpiresOnlyCompleted(t *testing.T) {
	repo := memory.NewJobRepository(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingJob("pending")))
	require.NoError(t, repo.Create(ctx, pendingJob("done")))
	require.NoError(t, repo.Complete(ctx, "done", 1, nil, time.Now()))

	assert.Eventually(t, func() bool {
		_, err := repo.Get(ctx, "done")
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)

	job, err := repo.Get(ctx, "pending")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)
}

func TestJobRepository_ConcurrentAccess(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	const jobs = 50
	var wg sync.WaitGroup

	for i := 0; i < jobs; i++ {
		id := fmt.Sprintf("job-%d", i)
		require.NoError(t, repo.Create(ctx, pendingJob(id)))

		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.Complete(ctx, id, 1, []domain.City{{GUID: id}}, time.Now())
		}()
		go func() {
			defer wg.Done()
			job, err := repo.Get(ctx, id)
			if assert.NoError(t, err) && job.IsCompleted() {
				assert.Equal(t, id, job.Result[0].GUID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.JobStats{Completed: jobs}, repo.Stats(ctx))
}

func TestJobRepository_CreateAssignsFirstRevision(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	job := pendingJob("job-1")
	require.NoError(t, repo.Create(ctx, job))
	assert.Equal(t, 1, job.Revision)

	stored, err := repo.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Revision)
}

func TestJobRepository_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("missing record is created", func(t *testing.T) {
		repo := memory.NewJobRepository(0)

		job := pendingJob("job-1")
		previous, err := repo.Replace(ctx, job)
		require.NoError(t, err)
		assert.Nil(t, previous)
		assert.Equal(t, 1, job.Revision)
	})

	t.Run("completed record becomes a new pending revision", func(t *testing.T) {
		repo := memory.NewJobRepository(0)
		require.NoError(t, repo.Create(ctx, pendingJob("job-1")))
		require.NoError(t, repo.Complete(ctx, "job-1", 1, []domain.City{{GUID: "a"}}, time.Now()))

		next := pendingJob("job-1")
		next.RadiusKm = 250.4
		previous, err := repo.Replace(ctx, next)
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.True(t, previous.IsCompleted())
		assert.Equal(t, 250.0, previous.RadiusKm)
		assert.Equal(t, 2, next.Revision)

		stored, err := repo.Get(ctx, "job-1")
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPending, stored.Status)
		assert.Nil(t, stored.Result)
		assert.Equal(t, 250.4, stored.RadiusKm)
	})

	t.Run("stale revision cannot complete", func(t *testing.T) {
		repo := memory.NewJobRepository(0)
		require.NoError(t, repo.Create(ctx, pendingJob("job-1")))
		_, err := repo.Replace(ctx, pendingJob("job-1"))
		require.NoError(t, err)

		err = repo.Complete(ctx, "job-1", 1, []domain.City{{GUID: "stale"}}, time.Now())
		assert.ErrorIs(t, err, domain.ErrJobSuperseded)

		require.NoError(t, repo.Complete(ctx, "job-1", 2, []domain.City{{GUID: "fresh"}}, time.Now()))
		stored, err := repo.Get(ctx, "job-1")
		require.NoError(t, err)
		assert.Equal(t, "fresh", stored.Result[0].GUID)
	})
}

func TestJobRepository_Delete(t *testing.T) {
	repo := memory.NewJobRepository(0)
	ctx := context.Background()

	err := repo.Delete(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	require.NoError(t, repo.Create(ctx, pendingJob("job-1")))
	_, err = repo.Replace(ctx, pendingJob("job-1"))
	require.NoError(t, err)

	// удаляется только текущая ревизия
	err = repo.Delete(ctx, "job-1", 1)
	assert.ErrorIs(t, err, domain.ErrJobSuperseded)

	require.NoError(t, repo.Delete(ctx, "job-1", 2))
	_, err = repo.Get(ctx, "job-1")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.Equal(t, domain.JobStats{}, repo.Stats(ctx))

	// ID снова свободен
	require.NoError(t, repo.Create(ctx, pendingJob("job-1")))
}
