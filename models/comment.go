package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Post      primitive.ObjectID `bson:"post" json:"post"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// Populated on reads, not stored.
	AuthorInfo *UserRef `bson:"-" json:"authorInfo,omitempty"`
}

func (c *Comment) Validate() error {
	return asError(requireString(nil, "content", c.Content, 0))
}
