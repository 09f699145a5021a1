package repository

import (
	"context"
	"time"

	"github.com/cities-geo-service/internal/domain"
)

// JobRepository - хранилище задач поиска; единственная разделяемая изменяемая структура
type JobRepository interface {
	// Create сохраняет новую pending задачу, domain.ErrJobExists если ID занят.
	// Назначенная ревизия записывается в job.Revision.
	Create(ctx context.Context, job *domain.SearchJob) error

	// Replace сохраняет pending задачу поверх существующей записи с тем же ID
	// (или создаёт её) и возвращает предыдущую запись, nil если её не было.
	// Новая ревизия записывается в job.Revision.
	Replace(ctx context.Context, job *domain.SearchJob) (*domain.SearchJob, error)

	// Complete переводит ревизию задачи в completed и сохраняет результат;
	// domain.ErrJobSuperseded если запись уже заменена
	Complete(ctx context.Context, id string, revision int, result []domain.City, completedAt time.Time) error

	// Delete удаляет ревизию задачи (откат неудавшейся регистрации)
	Delete(ctx context.Context, id string, revision int) error

	// Get возвращает копию задачи без побочных эффектов, domain.ErrJobNotFound если её нет
	Get(ctx context.Context, id string) (*domain.SearchJob, error)

	Stats(ctx context.Context) domain.JobStats
}
