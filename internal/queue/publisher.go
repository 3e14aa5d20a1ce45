package queue

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Exchange = "bookstore.events"

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }

type UserCreated struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type PurchaseRecorded struct {
	UserID primitive.ObjectID `json:"user_id"`
	BookID primitive.ObjectID `json:"book_id"`
	Asin   string             `json:"asin"`
}

type CartItemAdded struct {
	OwnerID  primitive.ObjectID `json:"owner_id"`
	Asin     string             `json:"asin"`
	Quantity int                `json:"quantity"`
}
