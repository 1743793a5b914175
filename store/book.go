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

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now
	if book.Images == nil {
		book.Images = []models.Image{}
	}
	if book.BuyLinks == nil {
		book.BuyLinks = []models.BuyLink{}
	}
	if book.Tags == nil {
		book.Tags = []string{}
	}
	res, err := db.Books().InsertOne(ctx, book)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Duplicate("isbn already exists")
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Book not found")
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBookFields applies a partial $set update and returns the fresh
// document.
func (db *DB) UpdateBookFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Book, error) {
	fields["updatedAt"] = time.Now()
	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Book not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperr.Duplicate("isbn already exists")
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes the book and returns the deleted document so the
// caller can cascade (reviews, author book count).
func (db *DB) DeleteBook(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Book not found")
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Book list sort keys accepted by the public listing.
const (
	BookSortRating  = "rating"
	BookSortReviews = "reviews"
	BookSortTitle   = "title"
	BookSortYear    = "year"
	BookSortNewest  = "newest"
)

type BookFilter struct {
	Search       string
	Category     string
	SortBy       string
	ApprovedOnly bool
	Pending      bool // admin: only unapproved
	Skip         int64
	Limit        int64
}

func (f BookFilter) query() bson.M {
	filter := bson.M{}
	if f.ApprovedOnly {
		filter["isApproved"] = true
	}
	if f.Pending {
		filter["isApproved"] = false
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.Category != "" && f.Category != "All" && f.Category != "all" {
		filter["category"] = f.Category
	}
	return filter
}

func (f BookFilter) sort() bson.D {
	switch f.SortBy {
	case BookSortRating:
		return bson.D{{Key: "averageRating", Value: -1}, {Key: "totalReviews", Value: -1}}
	case BookSortReviews:
		return bson.D{{Key: "totalReviews", Value: -1}, {Key: "averageRating", Value: -1}}
	case BookSortTitle:
		return bson.D{{Key: "title", Value: 1}}
	case BookSortYear:
		return bson.D{{Key: "publishYear", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (db *DB) ListBooks(ctx context.Context, f BookFilter) ([]models.Book, int64, error) {
	filter := f.query()
	total, err := db.Books().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(f.sort()).SetSkip(f.Skip)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := db.Books().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// TrendingBooks returns approved books ranked by review volume.
func (db *DB) TrendingBooks(ctx context.Context, limit int64) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{"isApproved": true}, options.Find().
		SetSort(bson.D{{Key: "totalReviews", Value: -1}, {Key: "averageRating", Value: -1}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) BookCategoriesInUse(ctx context.Context) ([]string, error) {
	raw, err := db.Books().Distinct(ctx, "category", bson.M{"isApproved": true})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (db *DB) BooksByAuthor(ctx context.Context, authorID primitive.ObjectID, approvedOnly bool) ([]models.Book, error) {
	filter := bson.M{"authorId": authorID}
	if approvedOnly {
		filter["isApproved"] = true
	}
	cur, err := db.Books().Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) CountBooks(ctx context.Context, filter bson.M) (int64, error) {
	return db.Books().CountDocuments(ctx, filter)
}

// CountApprovedBooksByAuthor feeds the author bookCount recompute.
func (db *DB) CountApprovedBooksByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return db.Books().CountDocuments(ctx, bson.M{"authorId": authorID, "isApproved": true})
}

func (db *DB) RecentBooks(ctx context.Context, limit int64) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SetBookRating persists the recomputed aggregate fields.
func (db *DB) SetBookRating(ctx context.Context, id primitive.ObjectID, average float64, total int) error {
	_, err := db.Books().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"averageRating": average, "totalReviews": total},
	})
	return err
}
