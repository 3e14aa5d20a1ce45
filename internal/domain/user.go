package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseEntry is a snapshot of a book at purchase time. It keeps its own
// id so item-level operations can address it independently of the source book.
type PurchaseEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Asin         string             `bson:"asin" json:"asin"`
	Title        string             `bson:"title" json:"title"`
	Img          string             `bson:"img" json:"img"`
	Price        float64            `bson:"price" json:"price"`
	Category     string             `bson:"category" json:"category"`
	PurchaseDate time.Time          `bson:"purchase_date" json:"purchaseDate"`
}

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName       string             `bson:"first_name" json:"firstName"`
	LastName        string             `bson:"last_name" json:"lastName"`
	Email           string             `bson:"email" json:"email"`
	DateOfBirth     *time.Time         `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Age             int                `bson:"age" json:"age"`
	Professions     []string           `bson:"professions" json:"professions"`
	PurchaseHistory []PurchaseEntry    `bson:"purchase_history" json:"purchaseHistory"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
