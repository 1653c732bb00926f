package repository

import (
	"Relink-Backend/internal/domain"
	"context"
	"errors"
)

var ErrCodeNotFound = errors.New("short code not found")

// LinkStore is the read side of the redirect path: one lookup per request
// plus a fire-and-forget click increment.
type LinkStore interface {
	// ResolveLink returns the non-deleted link for code, fetching only the
	// fields the redirect needs (id, long_url). ErrCodeNotFound on miss.
	ResolveLink(ctx context.Context, code string) (*domain.Link, error)

	// IncrementClicks bumps click_count by exactly one for the given link id.
	IncrementClicks(ctx context.Context, linkID int64) error
}

// EngagementSink is the append-only analytics store.
type EngagementSink interface {
	RecordEngagement(ctx context.Context, engagement *domain.Engagement) error
}

// Storage combines both collaborators; the postgres and memory
// implementations satisfy it with a single handle.
type Storage interface {
	LinkStore
	EngagementSink
}
