package models

import (
	"time"

	"github.com/wordingo/backend/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SocialLinks struct {
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type Award struct {
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Bio         string             `bson:"bio" json:"bio"`
	Image       Image              `bson:"image,omitempty" json:"image,omitempty"`
	BirthDate   *time.Time         `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Nationality string             `bson:"nationality,omitempty" json:"nationality,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	SocialLinks SocialLinks        `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Genres      []string           `bson:"genres" json:"genres"`
	Awards      []Award            `bson:"awards" json:"awards"`
	UserID      primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	IsVerified  bool               `bson:"isVerified" json:"isVerified"`

	// Maintained by the rating maintainer, never set by clients.
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalRatings  int     `bson:"totalRatings" json:"totalRatings"`
	BookCount     int     `bson:"bookCount" json:"bookCount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (a *Author) Validate() error {
	var errs []apperr.FieldError
	errs = requireString(errs, "name", a.Name, 100)
	errs = limitString(errs, "bio", a.Bio, 2000)
	errs = limitString(errs, "nationality", a.Nationality, 50)
	if a.Website != "" && !isHTTPURL(a.Website) {
		errs = append(errs, apperr.FieldError{Field: "website", Message: "Please provide a valid website URL"})
	}
	for _, g := range a.Genres {
		errs = requireOneOf(errs, "genres", g, BookCategories)
	}
	return asError(errs)
}

// AuthorRef is the slim projection of an author attached to books on
// reads.
type AuthorRef struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
	TotalRatings  int                `bson:"totalRatings" json:"totalRatings"`
	Image         Image              `bson:"image,omitempty" json:"image,omitempty"`
}

func (a *Author) Ref() *AuthorRef {
	return &AuthorRef{
		ID:            a.ID,
		Name:          a.Name,
		Slug:          a.Slug,
		AverageRating: a.AverageRating,
		TotalRatings:  a.TotalRatings,
		Image:         a.Image,
	}
}
