package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/coinscope/pkg/domain"
)

// insertChunk keeps a multi-row insert well under SQLite's bound variables limit
const insertChunk = 500

// defaultListLimit applies when a filter doesn't set one
const defaultListLimit = 100

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Date        string    `db:"date"`
	Source      string    `db:"source"`
	SourceURL   string    `db:"source_url"`
	Category    string    `db:"category"`
	Sentiment   string    `db:"sentiment"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ExistingIDs returns the subset of ids already stored, with a single query
func (r *ArticleRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query, args, err := sqlx.In("SELECT id FROM articles WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build existing ids query: %w", err)
	}

	res := []int64{}
	if err := r.db.SelectContext(ctx, &res, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select existing ids: %w", err)
	}
	return res, nil
}

// InsertMany stores all articles in one transaction, either all of them are inserted or none.
// Lock errors are retried with backoff.
func (r *ArticleRepository) InsertMany(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	rows := make([]articleSQL, len(articles))
	for i, a := range articles {
		rows[i] = toSQL(a)
	}

	query := `
		INSERT INTO articles (id, title, description, date, source, source_url, category, sentiment)
		VALUES (:id, :title, :description, :date, :source, :source_url, :category, :sentiment)
	`

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("begin transaction: %w", err)}
		}
		defer func() { _ = tx.Rollback() }()

		for start := 0; start < len(rows); start += insertChunk {
			end := min(start+insertChunk, len(rows))
			if _, err := tx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
				if isLockError(err) {
					return err
				}
				return &criticalError{err: fmt.Errorf("insert articles: %w", err)}
			}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("commit articles: %w", err)}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(articles), nil
}

// MaxID returns the highest stored id, 0 for an empty store
func (r *ArticleRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	if err := r.db.GetContext(ctx, &maxID, "SELECT COALESCE(MAX(id), 0) FROM articles"); err != nil {
		return 0, fmt.Errorf("get max id: %w", err)
	}
	return maxID, nil
}

// Articles returns stored articles, newest id first
func (r *ArticleRepository) Articles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := "SELECT * FROM articles"
	args := []any{}
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}

	res := make([]domain.Article, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// Categories returns distinct stored categories in alphabetical order
func (r *ArticleRepository) Categories(ctx context.Context) ([]string, error) {
	res := []string{}
	if err := r.db.SelectContext(ctx, &res, "SELECT DISTINCT category FROM articles ORDER BY category"); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return res, nil
}

func toSQL(a domain.Article) articleSQL {
	return articleSQL{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Source:      a.Source,
		SourceURL:   a.SourceURL,
		Category:    a.Category,
		Sentiment:   string(a.Sentiment),
	}
}

func (a articleSQL) toDomain() domain.Article {
	return domain.Article{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		Source:      a.Source,
		SourceURL:   a.SourceURL,
		Category:    a.Category,
		Sentiment:   domain.Sentiment(a.Sentiment),
	}
}
