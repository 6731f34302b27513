// Package mongostore implements the article store on a MongoDB collection.
// Documents keep the field names used by the news collection ("Title", "Source URL", ...).
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/umputun/coinscope/pkg/domain"
)

const defaultListLimit = 100

// Config represents mongo connection parameters
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store keeps articles in a mongo collection
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// articleDoc is the stored document shape
type articleDoc struct {
	ID          int64  `bson:"id"`
	Title       string `bson:"Title"`
	Description string `bson:"Description"`
	Date        string `bson:"Date"`
	Source      string `bson:"Source"`
	SourceURL   string `bson:"Source URL"`
	Category    string `bson:"Category"`
	Sentiment   string `bson:"Sentiment"`
}

// New connects to mongo and verifies the connection.
// Connection and ping failures are reported as *domain.StoreUnavailableError.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout)
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, &domain.StoreUnavailableError{Err: fmt.Errorf("connect to mongo: %w", err)}
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &domain.StoreUnavailableError{Err: fmt.Errorf("ping mongo: %w", err)}
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if _, err := coll.Indexes().CreateOne(ctx, idIndex()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create id index: %w", err)
	}

	return &Store{client: client, coll: coll}, nil
}

// idIndex makes id unique, a second write of the same id fails even across processes
func idIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("id_unique"),
	}
}

// Close disconnects from mongo
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ExistingIDs returns the subset of ids already stored, with a single $in query
func (s *Store) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	opts := options.Find().SetProjection(bson.D{{Key: "id", Value: 1}, {Key: "_id", Value: 0}})
	cur, err := s.coll.Find(ctx, bson.D{{Key: "id", Value: bson.D{{Key: "$in", Value: ids}}}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find existing ids: %w", err)
	}

	var docs []struct {
		ID int64 `bson:"id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read existing ids: %w", err)
	}

	res := make([]int64, len(docs))
	for i, d := range docs {
		res[i] = d.ID
	}
	return res, nil
}

// InsertMany stores all articles with one bulk insert. An id already stored fails the insert
// with a duplicate key error.
func (s *Store) InsertMany(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	docs := make([]any, len(articles))
	for i, a := range articles {
		docs[i] = toDoc(a)
	}

	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert articles: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// MaxID returns the highest stored id, 0 for an empty collection
func (s *Store) MaxID(ctx context.Context) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})
	var doc articleDoc
	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find max id: %w", err)
	}
	return doc.ID, nil
}

// Articles returns stored articles, newest id first
func (s *Store) Articles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := bson.D{}
	if filter.Category != "" {
		query = bson.D{{Key: "Category", Value: filter.Category}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: -1}}).SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	res := make([]domain.Article, len(docs))
	for i, d := range docs {
		res[i] = d.toDomain()
	}
	return res, nil
}

func toDoc(a domain.Article) articleDoc {
	return articleDoc{
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

func (d articleDoc) toDomain() domain.Article {
	return domain.Article{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Source:      d.Source,
		SourceURL:   d.SourceURL,
		Category:    d.Category,
		Sentiment:   domain.Sentiment(d.Sentiment),
	}
}

// Categories returns distinct stored categories in alphabetical order
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	var res []string
	if err := s.coll.Distinct(ctx, "Category", bson.D{}).Decode(&res); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	sort.Strings(res)
	return res, nil
}
