package store

import (
	"context"
	"time"

	"github.com/wordingo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertComment(ctx context.Context, comment *models.Comment) (primitive.ObjectID, error) {
	comment.CreatedAt = time.Now()
	res, err := db.Comments().InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) CommentsForPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := db.Comments().Find(ctx, bson.M{"post": postID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
