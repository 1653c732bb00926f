package service

import (
	"Relink-Backend/internal/domain"
	"Relink-Backend/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockLinkStore is a mock implementation of repository.LinkStore
type MockLinkStore struct {
	mock.Mock
}

func (m *MockLinkStore) ResolveLink(ctx context.Context, code string) (*domain.Link, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Link), args.Error(1)
}

func (m *MockLinkStore) IncrementClicks(ctx context.Context, linkID int64) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

func TestValidCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"simple code", "abc", true},
		{"exactly 20 bytes", strings.Repeat("a", 20), true},
		{"21 bytes", strings.Repeat("a", 21), false},
		{"41 characters", strings.Repeat("a", 41), false},
		{"multibyte within byte limit", "日本語です", true},     // 15 bytes, 5 chars
		{"multibyte over byte limit", "日本語の短いコード", false}, // 27 bytes, 9 chars
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCode(tt.code))
		})
	}
}

func TestResolver_RejectsOversizedCodeWithoutLookup(t *testing.T) {
	storage := &MockLinkStore{}
	resolver := NewResolver(storage, zap.NewNop())

	link, err := resolver.Resolve(context.Background(), strings.Repeat("x", 41))

	assert.Nil(t, link)
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
	storage.AssertNotCalled(t, "ResolveLink", mock.Anything, mock.Anything)
}

func TestResolver_MissIsNotFound(t *testing.T) {
	storage := &MockLinkStore{}
	storage.On("ResolveLink", mock.Anything, "nope").Return(nil, repository.ErrCodeNotFound)
	resolver := NewResolver(storage, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "nope")

	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
	storage.AssertExpectations(t)
}

func TestResolver_HitReturnsLink(t *testing.T) {
	storage := &MockLinkStore{}
	storage.On("ResolveLink", mock.Anything, "abc").
		Return(&domain.Link{ID: 7, LongURL: "https://example.com/x"}, nil)
	resolver := NewResolver(storage, zap.NewNop())

	link, err := resolver.Resolve(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, int64(7), link.ID)
	assert.Equal(t, "https://example.com/x", link.LongURL)
	storage.AssertExpectations(t)
}
