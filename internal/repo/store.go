package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by every lookup, update, and delete whose target
// id does not resolve; the HTTP layer translates it to a 404.
var ErrNotFound = errors.New("not found")

type Store struct {
	Client     *mongo.Client
	DB         *mongo.Database
	colUsers   *mongo.Collection
	colBooks   *mongo.Collection
	colAuthors *mongo.Collection
	colCarts   *mongo.Collection
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRetryWrites(true).
		SetMaxPoolSize(50),
	)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	db := cli.Database(dbname)
	return &Store{
		Client:     cli,
		DB:         db,
		colUsers:   db.Collection("users"),
		colBooks:   db.Collection("books"),
		colAuthors: db.Collection("authors"),
		colCarts:   db.Collection("carts"),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error { return s.Client.Disconnect(ctx) }

// EnsureIndexes creates the lookup indexes the handlers lean on. There is
// deliberately no unique index on (owner_id, status): the one-active-cart
// invariant is upsert-enforced only.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.colUsers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_asc"),
	})
	if err != nil {
		return err
	}

	_, err = s.colBooks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "asin", Value: 1}},
			Options: options.Index().SetName("asin_asc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}},
			Options: options.Index().SetName("category_price"),
		},
	})
	if err != nil {
		return err
	}

	_, err = s.colCarts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("owner_status"),
	})
	return err
}
