package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/service"
	"github.com/wordingo/backend/store"
)

type AuthorsHandler struct {
	DB      *store.DB
	Ratings *service.RatingMaintainer
}

// List returns authors that have at least one approved book.
// GET /api/authors
func (h *AuthorsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 12)
	q := r.URL.Query()
	authors, total, err := h.DB.ListAuthors(r.Context(), store.AuthorFilter{
		Search:        q.Get("search"),
		SortBy:        q.Get("sortBy"),
		WithBooksOnly: true,
		Skip:          skip,
		Limit:         int64(limit),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"authors":    authors,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns an author by slug, together with their approved books
// and the ten most recent ratings. GET /api/authors/{slug}
func (h *AuthorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	author, err := h.DB.AuthorBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	books, err := h.DB.BooksByAuthor(r.Context(), author.ID, true)
	if err != nil {
		respondError(w, err)
		return
	}
	ratings, err := h.DB.RecentAuthorRatings(r.Context(), author.ID, 10)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachRatingUsers(r.Context(), h.DB, ratings); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"author":  author,
		"books":   books,
		"ratings": ratings,
	})
}

type authorRatingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Rate creates or replaces the caller's rating of an author and
// recomputes the author's aggregate. POST /api/authors/{slug}/rate
func (h *AuthorsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	author, err := h.DB.AuthorBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}

	var req authorRatingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	rating, err := h.DB.AuthorRatingByAuthorAndUser(r.Context(), author.ID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	created := rating == nil
	if created {
		rating = &models.AuthorRating{Author: author.ID, User: userID}
	}
	rating.Rating = req.Rating
	rating.Review = req.Review
	if err := rating.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if created {
		id, err := h.DB.InsertAuthorRating(r.Context(), rating)
		if err != nil {
			respondError(w, err)
			return
		}
		rating.ID = id
	} else {
		if err := h.DB.UpdateAuthorRating(r.Context(), rating); err != nil {
			respondError(w, err)
			return
		}
	}
	if err := h.Ratings.RecomputeAuthorRating(r.Context(), author.ID); err != nil {
		respondError(w, err)
		return
	}

	msg := "Rating updated successfully"
	status := http.StatusOK
	if created {
		msg = "Rating added successfully"
		status = http.StatusCreated
	}
	respondMessage(w, status, msg, map[string]any{"rating": rating})
}

// MyRating returns the caller's rating of an author, if any.
// GET /api/authors/{slug}/my-rating
func (h *AuthorsHandler) MyRating(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	author, err := h.DB.AuthorBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	rating, err := h.DB.AuthorRatingByAuthorAndUser(r.Context(), author.ID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"rating": rating})
}
