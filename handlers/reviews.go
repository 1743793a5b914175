package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/service"
	"github.com/wordingo/backend/store"
)

type ReviewsHandler struct {
	DB      *store.DB
	Ratings *service.RatingMaintainer
}

// ListForBook returns a book's reviews. GET /api/books/{id}/reviews
func (h *ReviewsHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	page, limit, skip := pageParams(r, 10)
	reviews, total, err := h.DB.ListReviewsForBook(r.Context(), bookID, r.URL.Query().Get("sortBy"), skip, int64(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachReviewUsers(r.Context(), h.DB, reviews); err != nil {
		respondError(w, err)
		return
	}
	views := make([]models.ReviewView, len(reviews))
	for i := range reviews {
		views[i] = reviews[i].View()
	}
	respondData(w, http.StatusOK, map[string]any{
		"reviews":    views,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns a single review. GET /api/reviews/{id}
func (h *ReviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	review, err := h.DB.ReviewByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	reviews := []models.BookReview{*review}
	if err := attachReviewUsers(r.Context(), h.DB, reviews); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"review": reviews[0].View()})
}

type reviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Create adds a review; one per (book, user). The book's aggregate
// rating is recomputed in the same request before responding.
// POST /api/books/{id}/reviews
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	bookID, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.DB.BookByID(r.Context(), bookID); err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.DB.ReviewByBookAndUser(r.Context(), bookID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing != nil {
		respondError(w, apperr.Duplicate("You have already reviewed this book"))
		return
	}

	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	review := &models.BookReview{
		Book:   bookID,
		User:   userID,
		Rating: req.Rating,
		Review: req.Review,
	}
	if err := review.Validate(); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.DB.InsertReview(r.Context(), review)
	if err != nil {
		respondError(w, err)
		return
	}
	review.ID = id
	if err := h.Ratings.RecomputeBookRating(r.Context(), bookID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Review added successfully", map[string]any{"review": review.View()})
}

// Update edits an owned review, marks it edited, and recomputes the
// book's aggregate. PUT /api/reviews/{id}
func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	review, err := h.DB.ReviewByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if review.User != userID {
		respondError(w, apperr.Forbidden("Not authorized to update this review"))
		return
	}

	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Review != review.Review {
		now := time.Now()
		review.IsEdited = true
		review.EditedAt = &now
	}
	review.Rating = req.Rating
	review.Review = req.Review
	if err := review.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if err := h.DB.UpdateReview(r.Context(), review); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Ratings.RecomputeBookRating(r.Context(), review.Book); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Review updated successfully", map[string]any{"review": review.View()})
}

// Delete removes an owned review and recomputes the book's aggregate.
// DELETE /api/reviews/{id}
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	review, err := h.DB.ReviewByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if review.User != userID {
		respondError(w, apperr.Forbidden("Not authorized to delete this review"))
		return
	}
	if err := h.DB.DeleteReview(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Ratings.RecomputeBookRating(r.Context(), review.Book); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Review deleted successfully"})
}

// Upvote toggles the caller's upvote. POST /api/reviews/{id}/upvote
func (h *ReviewsHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, (*models.BookReview).ToggleUpvote, "isUpvoted")
}

// Downvote toggles the caller's downvote. POST /api/reviews/{id}/downvote
func (h *ReviewsHandler) Downvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, (*models.BookReview).ToggleDownvote, "isDownvoted")
}

func (h *ReviewsHandler) vote(w http.ResponseWriter, r *http.Request, toggle func(*models.BookReview, primitive.ObjectID, time.Time) bool, stateKey string) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	review, err := h.DB.ReviewByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	state := toggle(review, userID, time.Now())
	if err := h.DB.UpdateReviewVotes(r.Context(), review); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"upvoteCount":   len(review.Upvotes),
		"downvoteCount": len(review.Downvotes),
		stateKey:        state,
	})
}
