package handlers

import (
	"net/http"

	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/store"
)

type CommentsHandler struct {
	DB *store.DB
}

// ListForPost returns a post's comments, newest first.
// GET /api/posts/{id}/comments
func (h *CommentsHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	comments, err := h.DB.CommentsForPost(r.Context(), postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachCommentAuthors(r.Context(), h.DB, comments); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"comments": comments})
}

// Create adds a comment to a post. POST /api/posts/{id}/comments
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	postID, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.DB.PostByID(r.Context(), postID); err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	comment := &models.Comment{
		Post:    postID,
		Author:  userID,
		Content: req.Content,
	}
	if err := comment.Validate(); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.DB.InsertComment(r.Context(), comment)
	if err != nil {
		respondError(w, err)
		return
	}
	comment.ID = id
	comments := []models.Comment{*comment}
	if err := attachCommentAuthors(r.Context(), h.DB, comments); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Comment added successfully", map[string]any{"comment": comments[0]})
}
