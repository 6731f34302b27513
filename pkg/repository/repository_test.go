package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/coinscope/pkg/domain"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func testArticle(id int64, category string) domain.Article {
	return domain.Article{
		ID:          id,
		Title:       "title " + category,
		Description: "description",
		Date:        "March 07, 2024",
		Source:      "www.newsbtc.com",
		SourceURL:   "https://www.newsbtc.com/news/",
		Category:    category,
		Sentiment:   domain.SentimentPositive,
	}
}

func TestRepositories_Open(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))

	t.Run("file database", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?mode=rwc&_txlock=immediate"
		r, err := NewRepositories(context.Background(), Config{DSN: dsn})
		require.NoError(t, err)
		require.NoError(t, r.Close())

		// schema init is idempotent
		r, err = NewRepositories(context.Background(), Config{DSN: dsn})
		require.NoError(t, err)
		require.NoError(t, r.Close())
	})

	t.Run("unreachable database", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "missing", "dir", "test.db") + "?mode=ro"
		_, err := NewRepositories(context.Background(), Config{DSN: dsn})
		require.Error(t, err)
		var storeErr *domain.StoreUnavailableError
		assert.True(t, errors.As(err, &storeErr))
	})
}

func TestArticleRepository_InsertAndQuery(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	repo := repos.Article

	maxID, err := repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Zero(t, maxID, "empty store")

	n, err := repo.InsertMany(ctx, []domain.Article{testArticle(1, "BTC"), testArticle(2, "ETH"), testArticle(5, "BTC")})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	maxID, err = repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), maxID)

	existing, err := repo.ExistingIDs(ctx, []int64{2, 3, 5, 7})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 5}, existing)

	existing, err = repo.ExistingIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, existing)

	all, err := repo.Articles(ctx, domain.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{5, 2, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, testArticle(5, "BTC"), all[0])

	btc, err := repo.Articles(ctx, domain.ArticleFilter{Category: "BTC", Limit: 1})
	require.NoError(t, err)
	require.Len(t, btc, 1)
	assert.Equal(t, int64(5), btc[0].ID)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH"}, cats)

	n, err = repo.InsertMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestArticleRepository_InsertManyAtomic(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	repo := repos.Article

	_, err := repo.InsertMany(ctx, []domain.Article{testArticle(1, "BTC")})
	require.NoError(t, err)

	// id 1 collides, nothing of the batch is stored
	_, err = repo.InsertMany(ctx, []domain.Article{testArticle(2, "ETH"), testArticle(1, "BTC")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert articles")

	existing, err := repo.ExistingIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, existing)
}

func TestArticleRepository_LargeBatch(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	batch := make([]domain.Article, 0, 1200)
	ids := make([]int64, 0, 1200)
	for i := int64(1); i <= 1200; i++ {
		batch = append(batch, testArticle(i, "DOGE"))
		ids = append(ids, i)
	}
	n, err := repos.Article.InsertMany(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1200, n)

	existing, err := repos.Article.ExistingIDs(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, existing, 1200)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isLockError(errors.New("database table is locked")))
	assert.False(t, isLockError(errors.New("UNIQUE constraint failed: articles.id")))

	err := &criticalError{err: errors.New("boom")}
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "boom", errors.Unwrap(err).Error())
}
