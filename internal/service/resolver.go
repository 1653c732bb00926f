package service

import (
	"Relink-Backend/internal/domain"
	"Relink-Backend/internal/repository"
	"context"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Codes longer than this are rejected before any storage access. The byte
// limit matches the short_code column width; the character limit bounds
// pathological multi-byte input.
const (
	maxCodeChars = 40
	maxCodeBytes = 20
)

// ValidCode reports whether a raw path segment is a plausible short code.
func ValidCode(code string) bool {
	if utf8.RuneCountInString(code) > maxCodeChars {
		return false
	}
	if len(code) > maxCodeBytes {
		return false
	}
	return true
}

// Resolver turns a short code into its stored link.
type Resolver struct {
	storage repository.LinkStore
	log     *zap.Logger
}

func NewResolver(storage repository.LinkStore, log *zap.Logger) *Resolver {
	return &Resolver{
		storage: storage,
		log:     log,
	}
}

// Resolve validates code and performs exactly one lookup. A malformed code
// returns ErrCodeNotFound without touching storage, deliberately
// indistinguishable from a genuine miss.
func (r *Resolver) Resolve(ctx context.Context, code string) (*domain.Link, error) {
	if !ValidCode(code) {
		r.log.Debug("rejected oversized code",
			zap.Int("chars", utf8.RuneCountInString(code)),
			zap.Int("bytes", len(code)))
		return nil, repository.ErrCodeNotFound
	}

	return r.storage.ResolveLink(ctx, code)
}
