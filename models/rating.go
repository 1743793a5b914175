package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthorRating is a user's 1-5 rating of an author, with an optional
// short review. One rating per (author, user) pair.
type AuthorRating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Review    string             `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated on reads, not stored.
	UserInfo *UserRef `bson:"-" json:"userInfo,omitempty"`
}

func (r *AuthorRating) Validate() error {
	var errs = requireRating(nil, r.Rating)
	errs = limitString(errs, "review", r.Review, 500)
	return asError(errs)
}
