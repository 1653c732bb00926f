package memory

import (
	"Relink-Backend/internal/domain"
	"Relink-Backend/internal/repository"
	"context"
	"sync"
)

// MemStorage is an in-memory repository.Storage used by tests.
type MemStorage struct {
	mu          sync.RWMutex
	links       map[string]*domain.Link
	engagements []*domain.Engagement
	linkCounter int64
}

func New() *MemStorage {
	return &MemStorage{
		links: make(map[string]*domain.Link),
	}
}

// SaveLink seeds a link; code allocation happens out-of-band in production,
// so this exists only for test setup.
func (s *MemStorage) SaveLink(_ context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if link.ID == 0 {
		s.linkCounter++
		link.ID = s.linkCounter
	}
	s.links[link.ShortCode] = link
	return nil
}

func (s *MemStorage) ResolveLink(_ context.Context, code string) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[code]
	if !ok || link.Deleted {
		return nil, repository.ErrCodeNotFound
	}
	// Mimic the narrow SELECT: callers only get id and long_url.
	return &domain.Link{ID: link.ID, LongURL: link.LongURL}, nil
}

func (s *MemStorage) IncrementClicks(_ context.Context, linkID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, link := range s.links {
		if link.ID == linkID {
			link.ClickCount++
			return nil
		}
	}
	return repository.ErrCodeNotFound
}

func (s *MemStorage) RecordEngagement(_ context.Context, engagement *domain.Engagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engagements = append(s.engagements, engagement)
	return nil
}

// Engagements returns a snapshot of recorded rows.
func (s *MemStorage) Engagements() []*domain.Engagement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Engagement, len(s.engagements))
	copy(out, s.engagements)
	return out
}

// ClickCount returns the current counter for a code, 0 when absent.
func (s *MemStorage) ClickCount(code string) uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if link, ok := s.links[code]; ok {
		return link.ClickCount
	}
	return 0
}
