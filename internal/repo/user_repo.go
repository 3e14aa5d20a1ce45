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

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Professions == nil {
		u.Professions = []string{}
	}
	if u.PurchaseHistory == nil {
		u.PurchaseHistory = []domain.PurchaseEntry{}
	}
	res, err := s.colUsers.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.User{}
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

// UpdateUser applies the given field set and returns the updated document.
func (s *Store) UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.User, error) {
	fields["updated_at"] = time.Now().UTC()
	var u domain.User
	err := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

func (s *Store) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.colUsers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushPurchase appends a purchase-history entry and returns the updated user.
func (s *Store) PushPurchase(ctx context.Context, userID primitive.ObjectID, entry domain.PurchaseEntry) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"purchase_history": entry},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

// PullPurchase removes an entry by its id and returns the updated user.
func (s *Store) PullPurchase(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"purchase_history": bson.M{"_id": entryID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &u, err
}

// ReplaceUser persists the whole document; used after in-memory merges on
// the embedded purchase history.
func (s *Store) ReplaceUser(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	_, err := s.colUsers.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	return err
}
