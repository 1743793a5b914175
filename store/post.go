package store

import (
	"context"
	"time"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertPost(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []models.Vote{}
	}
	if post.Saves == nil {
		post.Saves = []models.Vote{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	res, err := db.Posts().InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := db.Posts().FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// publishedFilter also matches legacy posts written before the
// isPublished field existed.
func publishedFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"isPublished": true},
		bson.M{"isPublished": bson.M{"$exists": false}},
	}}
}

func (db *DB) ListPosts(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	filter := publishedFilter()
	return db.listPosts(ctx, filter, bson.M{"createdAt": -1}, skip, limit)
}

func (db *DB) ListPostsByUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error) {
	return db.listPosts(ctx, bson.M{"user": userID}, bson.M{"createdAt": -1}, skip, limit)
}

// ListSavedPosts returns published posts the user has saved.
func (db *DB) ListSavedPosts(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]models.Post, int64, error) {
	filter := publishedFilter()
	filter["saves.user"] = userID
	return db.listPosts(ctx, filter, bson.M{"saves.createdAt": -1}, skip, limit)
}

func (db *DB) listPosts(ctx context.Context, filter bson.M, sort bson.M, skip, limit int64) ([]models.Post, int64, error) {
	total, err := db.Posts().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(sort).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := db.Posts().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdatePostFields applies a partial $set update and returns the fresh
// document.
func (db *DB) UpdatePostFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Post, error) {
	fields["updatedAt"] = time.Now()
	var post models.Post
	err := db.Posts().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePostVotes persists the like/save lists only.
func (db *DB) UpdatePostVotes(ctx context.Context, post *models.Post) error {
	_, err := db.Posts().UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$set": bson.M{
		"likes": post.Likes,
		"saves": post.Saves,
	}})
	return err
}

func (db *DB) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Post not found")
	}
	return nil
}

func (db *DB) CountPosts(ctx context.Context) (int64, error) {
	return db.Posts().CountDocuments(ctx, bson.M{})
}
