package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tazhibayda/bookstore-api/internal/domain"
)

func (s *Store) CreateAuthor(ctx context.Context, a *domain.Author) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := s.colAuthors.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (s *Store) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	cur, err := s.colAuthors.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Author{}
	for cur.Next(ctx) {
		var a domain.Author
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

func (s *Store) FindAuthorByID(ctx context.Context, id primitive.ObjectID) (*domain.Author, error) {
	var a domain.Author
	err := s.colAuthors.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &a, err
}

func (s *Store) UpdateAuthor(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Author, error) {
	fields["updated_at"] = time.Now().UTC()
	var a domain.Author
	err := s.colAuthors.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &a, err
}

func (s *Store) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.colAuthors.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
