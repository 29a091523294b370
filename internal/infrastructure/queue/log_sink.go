package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// LogSink writes events to the application log. It is used when no broker
// is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, event domain.BlogEvent) error {
	s.log.Info().
		Str("type", string(event.Type)).
		Int64("post_id", event.PostID).
		Int64("user_id", event.UserID).
		Int64("comment_id", event.CommentID).
		Time("occurred_at", event.OccurredAt).
		Msg("blog event")
	return nil
}
