package postgres

import (
	"Relink-Backend/internal/domain"
	"Relink-Backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStorage implements repository.Storage on top of GORM.
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a new PostgreSQL storage instance
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// ResolveLink fetches the single non-deleted row for code. Only id and
// long_url are selected; the redirect path needs nothing else.
func (s *PostgresStorage) ResolveLink(ctx context.Context, code string) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).
		Select("id", "long_url").
		Where("short_code = ? AND deleted = ?", code, false).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to resolve link", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve link: %w", err)
	}

	return &link, nil
}

// IncrementClicks bumps click_count in a single UPDATE. No read-modify-write,
// so concurrent increments for the same link never double-count.
func (s *PostgresStorage) IncrementClicks(ctx context.Context, linkID int64) error {
	err := s.db.WithContext(ctx).Model(&domain.Link{}).
		Where("id = ?", linkID).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
	if err != nil {
		s.log.Error("failed to increment click count", zap.Int64("link_id", linkID), zap.Error(err))
		return fmt.Errorf("failed to increment click count: %w", err)
	}

	return nil
}

// RecordEngagement appends one visit row.
func (s *PostgresStorage) RecordEngagement(ctx context.Context, engagement *domain.Engagement) error {
	if err := s.db.WithContext(ctx).Create(engagement).Error; err != nil {
		s.log.Error("failed to record engagement", zap.String("code", engagement.ShortCode), zap.Error(err))
		return fmt.Errorf("failed to record engagement: %w", err)
	}

	return nil
}
