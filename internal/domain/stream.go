package domain

import "time"

// StreamSearchDone - стрим по умолчанию для событий о завершённых поисках
const StreamSearchDone = "stream:cities:search:done"

// SearchCompletedEvent публикуется после перехода задачи в completed
type SearchCompletedEvent struct {
	JobID       string    `json:"job_id"`
	FromID      string    `json:"from_id"`
	RadiusKm    float64   `json:"radius_km"`
	CityCount   int       `json:"city_count"`
	CityIDs     []string  `json:"city_ids"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewSearchCompletedEvent собирает событие из завершённой задачи
func NewSearchCompletedEvent(job *SearchJob) SearchCompletedEvent {
	ids := make([]string, 0, len(job.Result))
	for _, city := range job.Result {
		ids = append(ids, city.GUID)
	}
	return SearchCompletedEvent{
		JobID:       job.ID,
		FromID:      job.FromID,
		RadiusKm:    job.RadiusKm,
		CityCount:   len(job.Result),
		CityIDs:     ids,
		CompletedAt: job.CompletedAt,
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
