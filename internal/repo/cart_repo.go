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

// FindActiveCartWithItem looks for the owner's active cart holding a
// line-item with the given asin. ErrNotFound means no such cart/line-item,
// which for add-to-cart is the push-a-new-item branch, not a failure.
func (s *Store) FindActiveCartWithItem(ctx context.Context, ownerID primitive.ObjectID, asin string) (*domain.Cart, error) {
	var c domain.Cart
	err := s.colCarts.FindOne(ctx, bson.M{
		"owner_id":      ownerID,
		"status":        domain.CartStatusActive,
		"products.asin": asin,
	}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &c, err
}

// IncItemQuantity bumps the matched line-item's quantity atomically via the
// positional operator and returns the updated cart.
func (s *Store) IncItemQuantity(ctx context.Context, ownerID primitive.ObjectID, asin string, qty int) (*domain.Cart, error) {
	var c domain.Cart
	err := s.colCarts.FindOneAndUpdate(ctx,
		bson.M{
			"owner_id":      ownerID,
			"status":        domain.CartStatusActive,
			"products.asin": asin,
		},
		bson.M{
			"$inc": bson.M{"products.$.quantity": qty},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &c, err
}

// PushItem appends a line-item to the owner's active cart, creating the cart
// when none exists. owner_id and status come from the filter on upsert.
func (s *Store) PushItem(ctx context.Context, ownerID primitive.ObjectID, item domain.CartProduct) (*domain.Cart, error) {
	now := time.Now().UTC()
	var c domain.Cart
	err := s.colCarts.FindOneAndUpdate(ctx,
		bson.M{
			"owner_id": ownerID,
			"status":   domain.CartStatusActive,
		},
		bson.M{
			"$push":        bson.M{"products": item},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetUpsert(true),
	).Decode(&c)
	return &c, err
}
