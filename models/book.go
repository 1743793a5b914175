package models

import (
	"time"

	"github.com/wordingo/backend/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookCategories doubles as the author genre vocabulary.
var BookCategories = []string{
	"Fiction", "Non-Fiction", "Self-Help", "Finance", "History",
	"Poetry", "Biography", "Science", "Technology", "Other",
}

type Image struct {
	URL string `bson:"url,omitempty" json:"url,omitempty"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type BuyLink struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
}

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	AuthorID    primitive.ObjectID `bson:"authorId,omitempty" json:"authorId,omitempty"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	PublishYear int                `bson:"publishYear" json:"publishYear"`
	ISBN        string             `bson:"isbn,omitempty" json:"isbn,omitempty"`
	Price       string             `bson:"price" json:"price"`
	Images      []Image            `bson:"images" json:"images"`
	BuyLinks    []BuyLink          `bson:"buyLinks" json:"buyLinks"`
	Tags        []string           `bson:"tags" json:"tags"`
	AddedBy     primitive.ObjectID `bson:"addedBy" json:"addedBy"`
	IsApproved  bool               `bson:"isApproved" json:"isApproved"`

	// Maintained by the rating maintainer, never set by clients.
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalReviews  int     `bson:"totalReviews" json:"totalReviews"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Populated on reads, not stored.
	AddedByInfo *UserRef   `bson:"-" json:"addedByInfo,omitempty"`
	AuthorInfo  *AuthorRef `bson:"-" json:"authorInfo,omitempty"`
}

func (b *Book) Validate() error {
	var errs []apperr.FieldError
	errs = requireString(errs, "title", b.Title, 200)
	errs = requireString(errs, "author", b.Author, 100)
	errs = requireString(errs, "description", b.Description, 2000)
	errs = requireOneOf(errs, "category", b.Category, BookCategories)
	if b.PublishYear < 1000 {
		errs = append(errs, apperr.FieldError{Field: "publishYear", Message: "Invalid publish year"})
	} else if b.PublishYear > time.Now().Year() {
		errs = append(errs, apperr.FieldError{Field: "publishYear", Message: "Publish year cannot be in the future"})
	}
	errs = requireString(errs, "price", b.Price, 0)
	for _, l := range b.BuyLinks {
		if l.Name == "" || l.URL == "" {
			errs = append(errs, apperr.FieldError{Field: "buyLinks", Message: "Buy links need a name and a url"})
			break
		}
	}
	return asError(errs)
}
