package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/store"
)

type UsersHandler struct {
	DB *store.DB
}

func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	user, err := h.DB.UserByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"user": user})
}

type profileUpdateRequest struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req profileUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	user, err := h.DB.UpdateUserFields(r.Context(), userID, fields)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"user": user})
}
