package models

import (
	"time"

	"github.com/wordingo/backend/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var PostCategories = []string{
	"Story", "Poetry", "Article", "Review", "Discussion", "Other",
}

type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Category    string             `bson:"category" json:"category"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Likes       []Vote             `bson:"likes" json:"likes"`
	Saves       []Vote             `bson:"saves" json:"saves"`
	Tags        []string           `bson:"tags" json:"tags"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated on reads, not stored.
	UserInfo *UserRef `bson:"-" json:"userInfo,omitempty"`
}

func (p *Post) Validate() error {
	var errs []apperr.FieldError
	errs = requireString(errs, "title", p.Title, 200)
	errs = requireString(errs, "content", p.Content, 5000)
	errs = requireOneOf(errs, "category", p.Category, PostCategories)
	return asError(errs)
}

func (p *Post) IsLikedBy(userID primitive.ObjectID) bool {
	return hasVote(p.Likes, userID)
}

func (p *Post) IsSavedBy(userID primitive.ObjectID) bool {
	return hasVote(p.Saves, userID)
}

// ToggleLike adds or removes the user's like. Reports whether the post
// ends up liked.
func (p *Post) ToggleLike(userID primitive.ObjectID, now time.Time) bool {
	if hasVote(p.Likes, userID) {
		p.Likes = removeVote(p.Likes, userID)
		return false
	}
	p.Likes = append(p.Likes, Vote{User: userID, CreatedAt: now})
	return true
}

// ToggleSave mirrors ToggleLike for the saved list.
func (p *Post) ToggleSave(userID primitive.ObjectID, now time.Time) bool {
	if hasVote(p.Saves, userID) {
		p.Saves = removeVote(p.Saves, userID)
		return false
	}
	p.Saves = append(p.Saves, Vote{User: userID, CreatedAt: now})
	return true
}

// PostView adds like/save virtuals plus the requesting user's own
// like/save state.
type PostView struct {
	*Post
	LikeCount int  `json:"likeCount"`
	SaveCount int  `json:"saveCount"`
	IsLiked   bool `json:"isLiked"`
	IsSaved   bool `json:"isSaved"`
}

// View builds the response shape for the given viewer; a zero viewer
// ID means unauthenticated.
func (p *Post) View(viewer primitive.ObjectID) PostView {
	v := PostView{
		Post:      p,
		LikeCount: len(p.Likes),
		SaveCount: len(p.Saves),
	}
	if !viewer.IsZero() {
		v.IsLiked = p.IsLikedBy(viewer)
		v.IsSaved = p.IsSavedBy(viewer)
	}
	return v
}
