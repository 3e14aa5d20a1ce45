package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CartStatusActive = "active"

// CartProduct is a line-item: a book snapshot plus quantity. Matching inside
// the cart is by asin, so the same book cannot occupy two line-items.
type CartProduct struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Asin     string             `bson:"asin" json:"asin"`
	Title    string             `bson:"title" json:"title"`
	Img      string             `bson:"img" json:"img"`
	Price    float64            `bson:"price" json:"price"`
	Category string             `bson:"category" json:"category"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"owner_id" json:"ownerId"` // weak ref to users
	Status    string             `bson:"status" json:"status"`
	Products  []CartProduct      `bson:"products" json:"products"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
