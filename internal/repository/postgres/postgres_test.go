package postgres

import (
	"Relink-Backend/internal/database"
	"Relink-Backend/internal/domain"
	"Relink-Backend/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupStorage starts a throwaway PostgreSQL container and migrates the
// schema into it. Requires a local docker daemon; skipped with -short.
func setupStorage(t *testing.T) *PostgresStorage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15-alpine"),
		tcpostgres.WithDatabase("relink_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))

	return New(db, zap.NewNop())
}

func TestPostgresStorage_RedirectPath(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	title := "example"
	require.NoError(t, storage.db.Create(&domain.Link{
		ShortCode: "abc", LongURL: "https://example.com/x", Title: &title,
	}).Error)
	require.NoError(t, storage.db.Create(&domain.Link{
		ShortCode: "gone", LongURL: "https://example.com/old", Deleted: true,
	}).Error)

	t.Run("resolve existing code", func(t *testing.T) {
		link, err := storage.ResolveLink(ctx, "abc")
		require.NoError(t, err)
		assert.NotZero(t, link.ID)
		assert.Equal(t, "https://example.com/x", link.LongURL)
		assert.Nil(t, link.Title, "only id and long_url are selected")
	})

	t.Run("deleted code is invisible", func(t *testing.T) {
		_, err := storage.ResolveLink(ctx, "gone")
		assert.ErrorIs(t, err, repository.ErrCodeNotFound)
	})

	t.Run("unknown code is a miss", func(t *testing.T) {
		_, err := storage.ResolveLink(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrCodeNotFound)
	})

	t.Run("click increment is atomic", func(t *testing.T) {
		link, err := storage.ResolveLink(ctx, "abc")
		require.NoError(t, err)

		require.NoError(t, storage.IncrementClicks(ctx, link.ID))
		require.NoError(t, storage.IncrementClicks(ctx, link.ID))

		var stored domain.Link
		require.NoError(t, storage.db.First(&stored, link.ID).Error)
		assert.Equal(t, uint(2), stored.ClickCount)
	})

	t.Run("engagement insert", func(t *testing.T) {
		ip := "203.0.113.9"
		country := "SE"
		require.NoError(t, storage.RecordEngagement(ctx, &domain.Engagement{
			ShortCode: "abc",
			IP:        &ip,
			Country:   &country,
			IsBot:     true,
		}))

		var rows []domain.Engagement
		require.NoError(t, storage.db.Where("short_code = ?", "abc").Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, "SE", *rows[0].Country)
		assert.True(t, rows[0].IsBot)
		assert.False(t, rows[0].CreatedAt.IsZero())
	})
}
