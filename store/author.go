package store

import (
	"context"
	"time"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertAuthor(ctx context.Context, author *models.Author) (primitive.ObjectID, error) {
	now := time.Now()
	author.CreatedAt = now
	author.UpdatedAt = now
	author.Slug = utils.Slugify(author.Name)
	if author.Genres == nil {
		author.Genres = []string{}
	}
	if author.Awards == nil {
		author.Awards = []models.Award{}
	}
	res, err := db.Authors().InsertOne(ctx, author)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Duplicate("Author with this name already exists")
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	var author models.Author
	err := db.Authors().FindOne(ctx, bson.M{"_id": id}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Author not found")
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (db *DB) AuthorBySlug(ctx context.Context, slug string) (*models.Author, error) {
	var author models.Author
	err := db.Authors().FindOne(ctx, bson.M{"slug": slug}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Author not found")
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (db *DB) AuthorByName(ctx context.Context, name string) (*models.Author, error) {
	var author models.Author
	err := db.Authors().FindOne(ctx, bson.M{"name": name}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// AuthorRefsByIDs loads slim author projections for attaching to books.
func (db *DB) AuthorRefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.AuthorRef, error) {
	refs := make(map[primitive.ObjectID]*models.AuthorRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	cur, err := db.Authors().Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "slug": 1, "averageRating": 1, "totalRatings": 1, "image": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var authors []models.AuthorRef
	if err := cur.All(ctx, &authors); err != nil {
		return nil, err
	}
	for i := range authors {
		refs[authors[i].ID] = &authors[i]
	}
	return refs, nil
}

// AppendAuthorGenre adds the genre if the author does not already
// carry it.
func (db *DB) AppendAuthorGenre(ctx context.Context, id primitive.ObjectID, genre string) error {
	_, err := db.Authors().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"genres": genre},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	return err
}

// UpdateAuthorFields applies a partial $set update; a name change also
// refreshes the slug. Returns the fresh document.
func (db *DB) UpdateAuthorFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Author, error) {
	if name, ok := fields["name"].(string); ok {
		fields["slug"] = utils.Slugify(name)
	}
	fields["updatedAt"] = time.Now()
	var author models.Author
	err := db.Authors().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Author not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperr.Duplicate("Author with this name already exists")
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (db *DB) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Authors().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Author not found")
	}
	return nil
}

// Author list sort keys.
const (
	AuthorSortName   = "name"
	AuthorSortRating = "rating"
	AuthorSortBooks  = "books"
)

type AuthorFilter struct {
	Search        string
	SortBy        string
	WithBooksOnly bool
	Skip          int64
	Limit         int64
}

func (f AuthorFilter) sort() bson.D {
	switch f.SortBy {
	case AuthorSortRating:
		return bson.D{{Key: "averageRating", Value: -1}, {Key: "totalRatings", Value: -1}}
	case AuthorSortBooks:
		return bson.D{{Key: "bookCount", Value: -1}}
	default:
		return bson.D{{Key: "name", Value: 1}}
	}
}

func (db *DB) ListAuthors(ctx context.Context, f AuthorFilter) ([]models.Author, int64, error) {
	filter := bson.M{}
	if f.WithBooksOnly {
		filter["bookCount"] = bson.M{"$gt": 0}
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	total, err := db.Authors().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(f.sort()).SetSkip(f.Skip)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := db.Authors().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var authors []models.Author
	if err := cur.All(ctx, &authors); err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// AuthorsForDropdown returns every author's id, name and book count,
// sorted by name.
func (db *DB) AuthorsForDropdown(ctx context.Context) ([]models.Author, error) {
	cur, err := db.Authors().Find(ctx, bson.M{}, options.Find().
		SetSort(bson.M{"name": 1}).
		SetProjection(bson.M{"name": 1, "bookCount": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var authors []models.Author
	if err := cur.All(ctx, &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

// SetAuthorRating persists the recomputed aggregate fields.
func (db *DB) CountAuthors(ctx context.Context) (int64, error) {
	return db.Authors().CountDocuments(ctx, bson.M{})
}

func (db *DB) SetAuthorRating(ctx context.Context, id primitive.ObjectID, average float64, total int) error {
	_, err := db.Authors().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"averageRating": average, "totalRatings": total},
	})
	return err
}

// SetAuthorBookCount persists the recomputed approved-book count.
func (db *DB) SetAuthorBookCount(ctx context.Context, id primitive.ObjectID, count int) error {
	_, err := db.Authors().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"bookCount": count},
	})
	return err
}
