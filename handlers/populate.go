package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/store"
)

// Reference population: list endpoints attach slim user/author
// projections so clients render names and avatars without extra
// round trips.

func attachBookRefs(ctx context.Context, db *store.DB, books []models.Book) error {
	var userIDs, authorIDs []primitive.ObjectID
	for i := range books {
		userIDs = append(userIDs, books[i].AddedBy)
		if !books[i].AuthorID.IsZero() {
			authorIDs = append(authorIDs, books[i].AuthorID)
		}
	}
	users, err := db.UserRefsByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	authors, err := db.AuthorRefsByIDs(ctx, authorIDs)
	if err != nil {
		return err
	}
	for i := range books {
		books[i].AddedByInfo = users[books[i].AddedBy]
		books[i].AuthorInfo = authors[books[i].AuthorID]
	}
	return nil
}

func attachReviewUsers(ctx context.Context, db *store.DB, reviews []models.BookReview) error {
	ids := make([]primitive.ObjectID, len(reviews))
	for i := range reviews {
		ids[i] = reviews[i].User
	}
	users, err := db.UserRefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range reviews {
		reviews[i].UserInfo = users[reviews[i].User]
	}
	return nil
}

func attachRatingUsers(ctx context.Context, db *store.DB, ratings []models.AuthorRating) error {
	ids := make([]primitive.ObjectID, len(ratings))
	for i := range ratings {
		ids[i] = ratings[i].User
	}
	users, err := db.UserRefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range ratings {
		ratings[i].UserInfo = users[ratings[i].User]
	}
	return nil
}

func attachEventOrganizers(ctx context.Context, db *store.DB, events []models.Event) error {
	ids := make([]primitive.ObjectID, len(events))
	for i := range events {
		ids[i] = events[i].Organizer
	}
	users, err := db.UserRefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range events {
		events[i].OrganizerInfo = users[events[i].Organizer]
	}
	return nil
}

func attachPostUsers(ctx context.Context, db *store.DB, posts []models.Post) error {
	ids := make([]primitive.ObjectID, len(posts))
	for i := range posts {
		ids[i] = posts[i].User
	}
	users, err := db.UserRefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].UserInfo = users[posts[i].User]
	}
	return nil
}

func attachCommentAuthors(ctx context.Context, db *store.DB, comments []models.Comment) error {
	ids := make([]primitive.ObjectID, len(comments))
	for i := range comments {
		ids[i] = comments[i].Author
	}
	users, err := db.UserRefsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		comments[i].AuthorInfo = users[comments[i].Author]
	}
	return nil
}
