package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wordingo/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Test_Post_ToggleLikeAndSave(t *testing.T) {
	post := &models.Post{}
	user := primitive.NewObjectID()
	now := time.Now()

	assert.True(t, post.ToggleLike(user, now))
	assert.True(t, post.ToggleSave(user, now))
	assert.True(t, post.IsLikedBy(user))
	assert.True(t, post.IsSavedBy(user))

	// Likes and saves toggle independently.
	assert.False(t, post.ToggleLike(user, now))
	assert.False(t, post.IsLikedBy(user))
	assert.True(t, post.IsSavedBy(user))
}

func Test_Post_View_ViewerState(t *testing.T) {
	post := &models.Post{}
	liker := primitive.NewObjectID()
	now := time.Now()
	post.ToggleLike(liker, now)

	forLiker := post.View(liker)
	assert.Equal(t, 1, forLiker.LikeCount)
	assert.True(t, forLiker.IsLiked)
	assert.False(t, forLiker.IsSaved)

	forStranger := post.View(primitive.NewObjectID())
	assert.Equal(t, 1, forStranger.LikeCount)
	assert.False(t, forStranger.IsLiked)

	// Zero viewer means unauthenticated: counts only.
	anonymous := post.View(primitive.NilObjectID)
	assert.Equal(t, 1, anonymous.LikeCount)
	assert.False(t, anonymous.IsLiked)
	assert.False(t, anonymous.IsSaved)
}

func Test_Post_Validate(t *testing.T) {
	valid := models.Post{Title: "On rewriting", Content: "Draft twice.", Category: "Article"}
	assert.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	badCategory := valid
	badCategory.Category = "Gossip"
	assert.Error(t, badCategory.Validate())
}
