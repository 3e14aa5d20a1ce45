package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tazhibayda/bookstore-api/internal/domain"
	"github.com/tazhibayda/bookstore-api/internal/query"
)

func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Authors == nil {
		b.Authors = []primitive.ObjectID{}
	}
	res, err := s.colBooks.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

func (s *Store) FindBookByID(ctx context.Context, id primitive.ObjectID) (*domain.Book, error) {
	var b domain.Book
	err := s.colBooks.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &b, err
}

func (s *Store) UpdateBook(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Book, error) {
	fields["updated_at"] = time.Now().UTC()
	var b domain.Book
	err := s.colBooks.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &b, err
}

func (s *Store) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.colBooks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBooks counts every document matching the criteria, then fetches the
// paged, sorted subset with author references expanded to their name fields.
func (s *Store) ListBooks(ctx context.Context, q query.Query) (int64, []domain.BookWithAuthors, error) {
	total, err := s.colBooks.CountDocuments(ctx, q.Criteria)
	if err != nil {
		return 0, nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: q.Criteria}},
	}
	if len(q.Sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: q.Sort}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$skip", Value: q.Skip}},
		bson.D{{Key: "$limit", Value: q.Limit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "authors"},
			{Key: "localField", Value: "authors"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authors"},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "first_name", Value: 1},
					{Key: "last_name", Value: 1},
				}}},
			}},
		}}},
	)

	cur, err := s.colBooks.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, nil, err
	}
	defer cur.Close(ctx)

	books := []domain.BookWithAuthors{}
	if err := cur.All(ctx, &books); err != nil {
		return 0, nil, err
	}
	return total, books, nil
}
