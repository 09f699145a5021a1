package domain

import (
	"errors"
	"time"
)

// JobStatus - состояние задачи поиска по радиусу
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
)

var (
	ErrJobExists           = errors.New("job already exists")
	ErrJobNotFound         = errors.New("job not found")
	ErrJobAlreadyCompleted = errors.New("job already completed")
	ErrJobSuperseded       = errors.New("job superseded by a newer submission")
)

// SearchJob - асинхронный поиск городов в радиусе от исходного города.
// Переход pending -> completed выполняется ровно один раз для каждой ревизии.
// Ревизию назначает хранилище; закреплённый ID может получить новую ревизию,
// если его запросили с другим радиусом.
type SearchJob struct {
	ID          string    `json:"id"`
	Revision    int       `json:"revision"`
	FromID      string    `json:"from_id"`
	RadiusKm    float64   `json:"radius_km"`
	Status      JobStatus `json:"status"`
	Result      []City    `json:"result,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

func (j *SearchJob) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// Clone копирует запись вместе со слайсом результата; сами City неизменяемы
func (j *SearchJob) Clone() *SearchJob {
	cp := *j
	if j.Result != nil {
		cp.Result = make([]City, len(j.Result))
		copy(cp.Result, j.Result)
	}
	return &cp
}

// JobStats - количество задач в хранилище по состояниям
type JobStats struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}
