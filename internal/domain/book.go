package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book categories form a closed set; anything else is rejected on write.
const (
	CategoryHorror  = "horror"
	CategoryFantasy = "fantasy"
	CategoryHistory = "history"
	CategoryRomance = "romance"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryHorror, CategoryFantasy, CategoryHistory, CategoryRomance:
		return true
	}
	return false
}

type Book struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Asin      string               `bson:"asin" json:"asin"`
	Title     string               `bson:"title" json:"title"`
	Img       string               `bson:"img" json:"img"`
	Price     float64              `bson:"price" json:"price"`
	Category  string               `bson:"category" json:"category"`
	Authors   []primitive.ObjectID `bson:"authors" json:"authors"` // weak refs, no integrity enforced
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updatedAt"`
}

// AuthorRef is the joined view of an author inside a book listing.
type AuthorRef struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
}

// BookWithAuthors is the read model returned by the paged listing, with
// author references expanded to their name fields.
type BookWithAuthors struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Asin      string             `bson:"asin" json:"asin"`
	Title     string             `bson:"title" json:"title"`
	Img       string             `bson:"img" json:"img"`
	Price     float64            `bson:"price" json:"price"`
	Category  string             `bson:"category" json:"category"`
	Authors   []AuthorRef        `bson:"authors" json:"authors"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
