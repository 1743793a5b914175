package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Test_BookReview_ToggleUpvote(t *testing.T) {
	review := &models.BookReview{}
	user := primitive.NewObjectID()
	now := time.Now()

	assert.True(t, review.ToggleUpvote(user, now))
	assert.True(t, review.IsUpvotedBy(user))
	assert.Len(t, review.Upvotes, 1)

	// Second toggle removes the vote.
	assert.False(t, review.ToggleUpvote(user, now))
	assert.False(t, review.IsUpvotedBy(user))
	assert.Empty(t, review.Upvotes)
}

func Test_BookReview_UpvoteDisplacesDownvote(t *testing.T) {
	review := &models.BookReview{}
	user := primitive.NewObjectID()
	now := time.Now()

	assert.True(t, review.ToggleDownvote(user, now))
	assert.True(t, review.ToggleUpvote(user, now))

	assert.True(t, review.IsUpvotedBy(user))
	assert.False(t, review.IsDownvotedBy(user))
	assert.Empty(t, review.Downvotes)
}

func Test_BookReview_VotesAreIndependentPerUser(t *testing.T) {
	review := &models.BookReview{}
	now := time.Now()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	review.ToggleUpvote(alice, now)
	review.ToggleDownvote(bob, now)
	review.ToggleUpvote(bob, now)

	view := review.View()
	assert.Equal(t, 2, view.UpvoteCount)
	assert.Equal(t, 0, view.DownvoteCount)
}

func Test_BookReview_Validate(t *testing.T) {
	tests := []struct {
		name    string
		review  models.BookReview
		wantErr bool
	}{
		{name: "valid", review: models.BookReview{Rating: 4, Review: "Loved it"}},
		{name: "rating_too_low", review: models.BookReview{Rating: 0, Review: "x"}, wantErr: true},
		{name: "rating_too_high", review: models.BookReview{Rating: 6, Review: "x"}, wantErr: true},
		{name: "missing_text", review: models.BookReview{Rating: 3}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.review.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
