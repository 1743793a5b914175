package service

import (
	"context"
	"math"

	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingMaintainer keeps the denormalized aggregate fields on books
// and authors consistent with the live review/rating documents. The
// write handlers call it synchronously after every rating-affecting
// write; each recompute is idempotent and a failure never rolls back
// the write that triggered it.
type RatingMaintainer struct {
	DB *store.DB
}

func NewRatingMaintainer(db *store.DB) *RatingMaintainer {
	return &RatingMaintainer{DB: db}
}

// summarize folds rating values into their mean (rounded to one
// decimal) and count. No values means both reset to zero.
func summarize(ratings []int) (average float64, total int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return round1(float64(sum) / float64(len(ratings))), len(ratings)
}

// round1 rounds to one decimal, half away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// RecomputeBookRating rereads every review of the book and writes the
// resulting averageRating/totalReviews back onto it.
func (m *RatingMaintainer) RecomputeBookRating(ctx context.Context, bookID primitive.ObjectID) error {
	ratings, err := m.DB.ReviewRatingsForBook(ctx, bookID)
	if err != nil {
		return err
	}
	average, total := summarize(ratings)
	return m.DB.SetBookRating(ctx, bookID, average, total)
}

// RecomputeAuthorRating is the author-side counterpart of
// RecomputeBookRating.
func (m *RatingMaintainer) RecomputeAuthorRating(ctx context.Context, authorID primitive.ObjectID) error {
	ratings, err := m.DB.RatingValuesForAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	average, total := summarize(ratings)
	return m.DB.SetAuthorRating(ctx, authorID, average, total)
}

// RecomputeAuthorBookCount recounts the approved books referencing the
// author and writes bookCount back.
func (m *RatingMaintainer) RecomputeAuthorBookCount(ctx context.Context, authorID primitive.ObjectID) error {
	count, err := m.DB.CountApprovedBooksByAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	return m.DB.SetAuthorBookCount(ctx, authorID, int(count))
}

// ResolveOrCreateAuthor links a book's free-text author name to an
// Author document, creating one when the name is new and appending the
// book's category to the author's genres when it is not carried yet.
// Runs before the book write so every book with an author name stores
// an authorId.
func (m *RatingMaintainer) ResolveOrCreateAuthor(ctx context.Context, name, category string) (primitive.ObjectID, error) {
	author, err := m.DB.AuthorByName(ctx, name)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if author == nil {
		return m.DB.InsertAuthor(ctx, &models.Author{
			Name:   name,
			Genres: []string{category},
		})
	}
	for _, g := range author.Genres {
		if g == category {
			return author.ID, nil
		}
	}
	if err := m.DB.AppendAuthorGenre(ctx, author.ID, category); err != nil {
		return primitive.NilObjectID, err
	}
	return author.ID, nil
}
