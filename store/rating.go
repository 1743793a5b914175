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

func (db *DB) InsertAuthorRating(ctx context.Context, rating *models.AuthorRating) (primitive.ObjectID, error) {
	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now
	res, err := db.AuthorRatings().InsertOne(ctx, rating)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Duplicate("You have already rated this author")
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AuthorRatingByAuthorAndUser(ctx context.Context, authorID, userID primitive.ObjectID) (*models.AuthorRating, error) {
	var rating models.AuthorRating
	err := db.AuthorRatings().FindOne(ctx, bson.M{"author": authorID, "user": userID}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (db *DB) UpdateAuthorRating(ctx context.Context, rating *models.AuthorRating) error {
	rating.UpdatedAt = time.Now()
	_, err := db.AuthorRatings().UpdateOne(ctx, bson.M{"_id": rating.ID}, bson.M{"$set": bson.M{
		"rating":    rating.Rating,
		"review":    rating.Review,
		"updatedAt": rating.UpdatedAt,
	}})
	return err
}

// RecentAuthorRatings returns the newest ratings for an author page.
func (db *DB) RecentAuthorRatings(ctx context.Context, authorID primitive.ObjectID, limit int64) ([]models.AuthorRating, error) {
	cur, err := db.AuthorRatings().Find(ctx, bson.M{"author": authorID}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ratings []models.AuthorRating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// RatingValuesForAuthor returns just the rating values of every rating
// on the author; the maintainer folds them into the stored aggregate.
func (db *DB) RatingValuesForAuthor(ctx context.Context, authorID primitive.ObjectID) ([]int, error) {
	cur, err := db.AuthorRatings().Find(ctx, bson.M{"author": authorID},
		options.Find().SetProjection(bson.M{"rating": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []struct {
		Rating int `bson:"rating"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ratings := make([]int, len(docs))
	for i, d := range docs {
		ratings[i] = d.Rating
	}
	return ratings, nil
}

func (db *DB) CountAuthorRatings(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return db.AuthorRatings().CountDocuments(ctx, bson.M{"author": authorID})
}

// DeleteRatingsForAuthor cascades an author delete.
func (db *DB) DeleteRatingsForAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := db.AuthorRatings().DeleteMany(ctx, bson.M{"author": authorID})
	return err
}
