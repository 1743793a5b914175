package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/store"
)

type PostsHandler struct {
	DB *store.DB
}

func postViews(posts []models.Post, viewer primitive.ObjectID) []models.PostView {
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].View(viewer)
	}
	return views
}

// List returns published posts, newest first. Works with or without a
// token; a token fills in the caller's like/save state. GET /api/posts
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.UserIDFromContext(r.Context())
	page, limit, skip := pageParams(r, 10)
	posts, total, err := h.DB.ListPosts(r.Context(), skip, int64(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachPostUsers(r.Context(), h.DB, posts); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"posts":      postViews(posts, viewer),
		"pagination": paginate(page, limit, total),
	})
}

// Get returns a single post with its comments. GET /api/posts/{id}
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	post, err := h.DB.PostByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	posts := []models.Post{*post}
	if err := attachPostUsers(r.Context(), h.DB, posts); err != nil {
		respondError(w, err)
		return
	}
	comments, err := h.DB.CommentsForPost(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachCommentAuthors(r.Context(), h.DB, comments); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"post":     posts[0].View(viewer),
		"comments": comments,
	})
}

type postRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Create publishes a new post. POST /api/posts
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		User:        userID,
		IsPublished: true,
	}
	if err := post.Validate(); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.DB.InsertPost(r.Context(), post)
	if err != nil {
		respondError(w, err)
		return
	}
	post.ID = id
	respondMessage(w, http.StatusCreated, "Post created successfully", map[string]any{"post": post.View(userID)})
}

// Update edits an owned post. PUT /api/posts/{id}
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	post, err := h.DB.PostByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post.User != userID {
		respondError(w, apperr.Forbidden("Not authorized to update this post"))
		return
	}

	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	updated := *post
	updated.Title = req.Title
	updated.Content = req.Content
	updated.Category = req.Category
	updated.Tags = req.Tags
	if err := updated.Validate(); err != nil {
		respondError(w, err)
		return
	}
	fresh, err := h.DB.UpdatePostFields(r.Context(), id, bson.M{
		"title":    updated.Title,
		"content":  updated.Content,
		"category": updated.Category,
		"tags":     updated.Tags,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Post updated successfully", map[string]any{"post": fresh.View(userID)})
}

// Delete removes an owned post. DELETE /api/posts/{id}
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	post, err := h.DB.PostByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post.User != userID {
		respondError(w, apperr.Forbidden("Not authorized to delete this post"))
		return
	}
	if err := h.DB.DeletePost(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Post deleted successfully"})
}

// Like toggles the caller's like. POST /api/posts/{id}/like
func (h *PostsHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, (*models.Post).ToggleLike, "isLiked")
}

// Save toggles the caller's save. POST /api/posts/{id}/save
func (h *PostsHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, (*models.Post).ToggleSave, "isSaved")
}

func (h *PostsHandler) vote(w http.ResponseWriter, r *http.Request, toggle func(*models.Post, primitive.ObjectID, time.Time) bool, stateKey string) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	post, err := h.DB.PostByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	state := toggle(post, userID, time.Now())
	if err := h.DB.UpdatePostVotes(r.Context(), post); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"likeCount": len(post.Likes),
		"saveCount": len(post.Saves),
		stateKey:    state,
	})
}

// Saved lists posts the caller has saved, most recently saved first.
// GET /api/posts/user/saved
func (h *PostsHandler) Saved(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	page, limit, skip := pageParams(r, 10)
	posts, total, err := h.DB.ListSavedPosts(r.Context(), userID, skip, int64(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachPostUsers(r.Context(), h.DB, posts); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"posts":      postViews(posts, userID),
		"pagination": paginate(page, limit, total),
	})
}

// MyPosts lists the caller's own posts. GET /api/posts/user/my-posts
func (h *PostsHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	page, limit, skip := pageParams(r, 10)
	posts, total, err := h.DB.ListPostsByUser(r.Context(), userID, skip, int64(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"posts":      postViews(posts, userID),
		"pagination": paginate(page, limit, total),
	})
}
