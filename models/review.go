package models

import (
	"time"

	"github.com/wordingo/backend/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote is one entry in a review's upvote or downvote list. A user
// appears at most once per list, and never in both lists at once.
type Vote struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type BookReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Book      primitive.ObjectID `bson:"book" json:"book"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Review    string             `bson:"review" json:"review"`
	Upvotes   []Vote             `bson:"upvotes" json:"upvotes"`
	Downvotes []Vote             `bson:"downvotes" json:"downvotes"`
	IsEdited  bool               `bson:"isEdited" json:"isEdited"`
	EditedAt  *time.Time         `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated on reads, not stored.
	UserInfo *UserRef `bson:"-" json:"userInfo,omitempty"`
}

func (r *BookReview) Validate() error {
	var errs []apperr.FieldError
	errs = requireRating(errs, r.Rating)
	errs = requireString(errs, "review", r.Review, 1000)
	return asError(errs)
}

func (r *BookReview) IsUpvotedBy(userID primitive.ObjectID) bool {
	return hasVote(r.Upvotes, userID)
}

func (r *BookReview) IsDownvotedBy(userID primitive.ObjectID) bool {
	return hasVote(r.Downvotes, userID)
}

// ToggleUpvote adds or removes the user's upvote and drops any
// downvote they held. Reports whether the review ends up upvoted.
func (r *BookReview) ToggleUpvote(userID primitive.ObjectID, now time.Time) bool {
	r.Downvotes = removeVote(r.Downvotes, userID)
	if hasVote(r.Upvotes, userID) {
		r.Upvotes = removeVote(r.Upvotes, userID)
		return false
	}
	r.Upvotes = append(r.Upvotes, Vote{User: userID, CreatedAt: now})
	return true
}

// ToggleDownvote mirrors ToggleUpvote for the downvote list.
func (r *BookReview) ToggleDownvote(userID primitive.ObjectID, now time.Time) bool {
	r.Upvotes = removeVote(r.Upvotes, userID)
	if hasVote(r.Downvotes, userID) {
		r.Downvotes = removeVote(r.Downvotes, userID)
		return false
	}
	r.Downvotes = append(r.Downvotes, Vote{User: userID, CreatedAt: now})
	return true
}

func hasVote(votes []Vote, userID primitive.ObjectID) bool {
	for _, v := range votes {
		if v.User == userID {
			return true
		}
	}
	return false
}

func removeVote(votes []Vote, userID primitive.ObjectID) []Vote {
	out := votes[:0]
	for _, v := range votes {
		if v.User != userID {
			out = append(out, v)
		}
	}
	return out
}

// ReviewView adds the vote-count virtuals to a review for responses.
type ReviewView struct {
	*BookReview
	UpvoteCount   int `json:"upvoteCount"`
	DownvoteCount int `json:"downvoteCount"`
}

func (r *BookReview) View() ReviewView {
	return ReviewView{
		BookReview:    r,
		UpvoteCount:   len(r.Upvotes),
		DownvoteCount: len(r.Downvotes),
	}
}
