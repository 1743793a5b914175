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

func (db *DB) InsertReview(ctx context.Context, review *models.BookReview) (primitive.ObjectID, error) {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Upvotes == nil {
		review.Upvotes = []models.Vote{}
	}
	if review.Downvotes == nil {
		review.Downvotes = []models.Vote{}
	}
	res, err := db.Reviews().InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Duplicate("You have already reviewed this book")
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ReviewByID(ctx context.Context, id primitive.ObjectID) (*models.BookReview, error) {
	var review models.BookReview
	err := db.Reviews().FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Review not found")
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (db *DB) ReviewByBookAndUser(ctx context.Context, bookID, userID primitive.ObjectID) (*models.BookReview, error) {
	var review models.BookReview
	err := db.Reviews().FindOne(ctx, bson.M{"book": bookID, "user": userID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Review list sort keys.
const (
	ReviewSortNewest     = "newest"
	ReviewSortOldest     = "oldest"
	ReviewSortRatingHigh = "rating-high"
	ReviewSortRatingLow  = "rating-low"
	ReviewSortHelpful    = "helpful"
)

func reviewSort(sortBy string) bson.D {
	switch sortBy {
	case ReviewSortOldest:
		return bson.D{{Key: "createdAt", Value: 1}}
	case ReviewSortRatingHigh:
		return bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}}
	case ReviewSortRatingLow:
		return bson.D{{Key: "rating", Value: 1}, {Key: "createdAt", Value: -1}}
	case ReviewSortHelpful:
		return bson.D{{Key: "upvotes", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (db *DB) ListReviewsForBook(ctx context.Context, bookID primitive.ObjectID, sortBy string, skip, limit int64) ([]models.BookReview, int64, error) {
	filter := bson.M{"book": bookID}
	total, err := db.Reviews().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(reviewSort(sortBy)).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := db.Reviews().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var reviews []models.BookReview
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ReviewRatingsForBook returns just the rating values of every review
// on the book; the maintainer folds them into the stored aggregate.
func (db *DB) ReviewRatingsForBook(ctx context.Context, bookID primitive.ObjectID) ([]int, error) {
	cur, err := db.Reviews().Find(ctx, bson.M{"book": bookID},
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

// UpdateReview persists an edited rating/review body along with the
// edit markers.
func (db *DB) UpdateReview(ctx context.Context, review *models.BookReview) error {
	review.UpdatedAt = time.Now()
	_, err := db.Reviews().UpdateOne(ctx, bson.M{"_id": review.ID}, bson.M{"$set": bson.M{
		"rating":    review.Rating,
		"review":    review.Review,
		"isEdited":  review.IsEdited,
		"editedAt":  review.EditedAt,
		"updatedAt": review.UpdatedAt,
	}})
	return err
}

// UpdateReviewVotes persists the upvote/downvote lists only.
func (db *DB) UpdateReviewVotes(ctx context.Context, review *models.BookReview) error {
	_, err := db.Reviews().UpdateOne(ctx, bson.M{"_id": review.ID}, bson.M{"$set": bson.M{
		"upvotes":   review.Upvotes,
		"downvotes": review.Downvotes,
	}})
	return err
}

func (db *DB) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Reviews().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Review not found")
	}
	return nil
}

// DeleteReviewsForBook cascades a book delete.
func (db *DB) DeleteReviewsForBook(ctx context.Context, bookID primitive.ObjectID) error {
	_, err := db.Reviews().DeleteMany(ctx, bson.M{"book": bookID})
	return err
}
