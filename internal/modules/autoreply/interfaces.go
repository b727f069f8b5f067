package autoreply

import (
	"context"

	"reviewloop/internal/domain"
)

type AISettingsStore interface {
	Get(ctx context.Context, userID int64, storeID *int64) (*domain.AISettings, error)
}

type ReviewStore interface {
	ListUnreplied(ctx context.Context, userID int64, storeID *int64) ([]domain.Review, error)
	MarkReplied(ctx context.Context, reviewID int64, replyText string) (bool, error)
}

type StoreLookup interface {
	GetDisplayName(ctx context.Context, storeID int64) (string, error)
}

// ReplyGenerator produces a reply draft for one review. Implementations
// must respect ctx cancellation; the scheduler bounds every call.
type ReplyGenerator interface {
	Generate(ctx context.Context, prompt, reviewText string, rating int) (string, error)
}

// EventSink receives dashboard notifications; delivery is best effort.
type EventSink interface {
	AutoReplyCompleted(userID int64, processed, total int)
}
