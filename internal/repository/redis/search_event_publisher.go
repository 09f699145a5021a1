package redis

import (
	"context"

	"github.com/cities-geo-service/internal/domain"
	"github.com/cities-geo-service/internal/domain/repository"
)

// SearchEventPublisher публикует события о завершённых поисках в стрим
type SearchEventPublisher struct {
	streams repository.StreamRepository
	stream  string
}

func NewSearchEventPublisher(streams repository.StreamRepository, stream string) *SearchEventPublisher {
	if stream == "" {
		stream = domain.StreamSearchDone
	}
	return &SearchEventPublisher{
		streams: streams,
		stream:  stream,
	}
}

func (p *SearchEventPublisher) PublishSearchCompleted(ctx context.Context, event domain.SearchCompletedEvent) error {
	return p.streams.PublishToStream(ctx, p.stream, event)
}
