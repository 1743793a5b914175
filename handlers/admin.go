package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/service"
	"github.com/wordingo/backend/store"
)

// AdminHandler backs the moderation surface: approval queues, status
// flips, user management and the author catalog.
type AdminHandler struct {
	DB      *store.DB
	Ratings *service.RatingMaintainer
}

// Dashboard returns platform counts and the latest submissions.
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	totalUsers, err := h.DB.CountUsersByRole(ctx, models.RoleUser)
	if err != nil {
		respondError(w, err)
		return
	}
	totalBooks, err := h.DB.CountBooks(ctx, bson.M{})
	if err != nil {
		respondError(w, err)
		return
	}
	pendingBooks, err := h.DB.CountBooks(ctx, bson.M{"isApproved": false})
	if err != nil {
		respondError(w, err)
		return
	}
	totalEvents, err := h.DB.CountEvents(ctx, bson.M{})
	if err != nil {
		respondError(w, err)
		return
	}
	pendingEvents, err := h.DB.CountEvents(ctx, bson.M{"isApproved": false})
	if err != nil {
		respondError(w, err)
		return
	}
	totalPosts, err := h.DB.CountPosts(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	totalAuthors, err := h.DB.CountAuthors(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	recentUsers, err := h.DB.RecentUsers(ctx, 5)
	if err != nil {
		respondError(w, err)
		return
	}
	recentBooks, err := h.DB.RecentBooks(ctx, 5)
	if err != nil {
		respondError(w, err)
		return
	}
	recentEvents, err := h.DB.RecentEvents(ctx, 5)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"totalUsers":    totalUsers,
			"totalBooks":    totalBooks,
			"pendingBooks":  pendingBooks,
			"totalEvents":   totalEvents,
			"pendingEvents": pendingEvents,
			"totalPosts":    totalPosts,
			"totalAuthors":  totalAuthors,
		},
		"recent": map[string]any{
			"users":  recentUsers,
			"books":  recentBooks,
			"events": recentEvents,
		},
	})
}

// ListUsers returns non-superadmin users with optional search.
// GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 20)
	users, total, err := h.DB.ListUsers(r.Context(), store.UserFilter{
		Search: r.URL.Query().Get("search"),
		Skip:   skip,
		Limit:  int64(limit),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": paginate(page, limit, total),
	})
}

// UpdateUser edits a user's profile fields and role.
// PUT /api/admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		Name       *string `json:"name"`
		Bio        *string `json:"bio"`
		Role       *string `json:"role"`
		IsVerified *bool   `json:"isVerified"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			respondError(w, apperr.ValidationMsg("Invalid role"))
			return
		}
		fields["role"] = *req.Role
	}
	if req.IsVerified != nil {
		fields["isVerified"] = *req.IsVerified
	}
	if len(fields) == 0 {
		respondError(w, apperr.ValidationMsg("No fields to update"))
		return
	}
	user, err := h.DB.UpdateUserFields(r.Context(), id, fields)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User updated successfully", map[string]any{"user": user})
}

// DeleteUser removes a user account. Superadmin only (enforced by the
// route middleware). DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	user, err := h.DB.UserByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if user.IsSuperAdmin() {
		respondError(w, apperr.Forbidden("Cannot delete a superadmin account"))
		return
	}
	if err := h.DB.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "User deleted successfully"})
}

// ListBooks returns books for moderation, filtered by approval status.
// GET /api/admin/books?status=pending|approved
func (h *AdminHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 20)
	q := r.URL.Query()
	f := store.BookFilter{
		Search: q.Get("search"),
		SortBy: store.BookSortNewest,
		Skip:   skip,
		Limit:  int64(limit),
	}
	switch q.Get("status") {
	case "pending":
		f.Pending = true
	case "approved":
		f.ApprovedOnly = true
	}
	books, total, err := h.DB.ListBooks(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachBookRefs(r.Context(), h.DB, books); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"books":      books,
		"pagination": paginate(page, limit, total),
	})
}

// CreateBook adds a book that goes live immediately.
// POST /api/admin/books
func (h *AdminHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Category:    req.Category,
		PublishYear: req.PublishYear,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Images:      req.Images,
		BuyLinks:    req.BuyLinks,
		Tags:        req.Tags,
		IsApproved:  true,
	}
	if err := book.Validate(); err != nil {
		respondError(w, err)
		return
	}
	authorID, err := h.Ratings.ResolveOrCreateAuthor(r.Context(), book.Author, book.Category)
	if err != nil {
		respondError(w, err)
		return
	}
	book.AuthorID = authorID
	id, err := h.DB.InsertBook(r.Context(), book)
	if err != nil {
		respondError(w, err)
		return
	}
	book.ID = id
	if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), authorID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Book created successfully", map[string]any{"book": book})
}

// UpdateBook edits any book without resetting its approval state.
// PUT /api/admin/books/{id}
func (h *AdminHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	updated := *book
	updated.Title = req.Title
	updated.Author = req.Author
	updated.Description = req.Description
	updated.Category = req.Category
	updated.PublishYear = req.PublishYear
	updated.ISBN = req.ISBN
	updated.Price = req.Price
	updated.Images = req.Images
	updated.BuyLinks = req.BuyLinks
	updated.Tags = req.Tags
	if err := updated.Validate(); err != nil {
		respondError(w, err)
		return
	}

	oldAuthorID := book.AuthorID
	authorID, err := h.Ratings.ResolveOrCreateAuthor(r.Context(), updated.Author, updated.Category)
	if err != nil {
		respondError(w, err)
		return
	}
	fresh, err := h.DB.UpdateBookFields(r.Context(), id, bson.M{
		"title":       updated.Title,
		"author":      updated.Author,
		"authorId":    authorID,
		"description": updated.Description,
		"category":    updated.Category,
		"publishYear": updated.PublishYear,
		"isbn":        updated.ISBN,
		"price":       updated.Price,
		"images":      updated.Images,
		"buyLinks":    updated.BuyLinks,
		"tags":        updated.Tags,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), authorID); err != nil {
		respondError(w, err)
		return
	}
	if !oldAuthorID.IsZero() && oldAuthorID != authorID {
		if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), oldAuthorID); err != nil {
			respondError(w, err)
			return
		}
	}
	respondMessage(w, http.StatusOK, "Book updated successfully", map[string]any{"book": fresh})
}

// SetBookStatus approves or rejects a book. The author's approved book
// count tracks the flip. PUT /api/admin/books/{id}/status
func (h *AdminHandler) SetBookStatus(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		IsApproved bool `json:"isApproved"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	book, err := h.DB.UpdateBookFields(r.Context(), id, bson.M{"isApproved": req.IsApproved})
	if err != nil {
		respondError(w, err)
		return
	}
	if !book.AuthorID.IsZero() {
		if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), book.AuthorID); err != nil {
			respondError(w, err)
			return
		}
	}
	msg := "Book rejected"
	if req.IsApproved {
		msg = "Book approved"
	}
	respondMessage(w, http.StatusOK, msg, map[string]any{"book": book})
}

// DeleteBook removes a book along with its reviews, then recomputes
// the author's book count. DELETE /api/admin/books/{id}
func (h *AdminHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	book, err := h.DB.DeleteBook(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.DB.DeleteReviewsForBook(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	if !book.AuthorID.IsZero() {
		if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), book.AuthorID); err != nil {
			respondError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Book deleted successfully"})
}

// ListEvents returns events for moderation, filtered by approval
// status. GET /api/admin/events?status=pending|approved
func (h *AdminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 20)
	q := r.URL.Query()
	f := store.EventFilter{
		Search: q.Get("search"),
		Skip:   skip,
		Limit:  int64(limit),
	}
	switch q.Get("status") {
	case "pending":
		f.Pending = true
	case "approved":
		f.ApprovedOnly = true
	}
	events, total, err := h.DB.ListEvents(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachEventOrganizers(r.Context(), h.DB, events); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"events":     eventViews(events),
		"pagination": paginate(page, limit, total),
	})
}

// CreateEvent adds an event that goes live immediately, organized by
// the calling admin. POST /api/admin/events
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserIDFromContext(r.Context())
	var req eventRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	event := &models.Event{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Date:                 req.Date,
		Time:                 req.Time,
		Location:             req.Location,
		IsOnline:             req.IsOnline,
		OnlineLink:           req.OnlineLink,
		MaxAttendees:         req.MaxAttendees,
		Organizer:            adminID,
		Image:                req.Image,
		Tags:                 req.Tags,
		Price:                req.Price,
		IsPaid:               req.IsPaid,
		IsApproved:           true,
		RegistrationDeadline: req.RegistrationDeadline,
	}
	if err := event.Validate(time.Now()); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.DB.InsertEvent(r.Context(), event)
	if err != nil {
		respondError(w, err)
		return
	}
	event.ID = id
	respondMessage(w, http.StatusCreated, "Event created successfully", map[string]any{"event": event.View()})
}

// UpdateEvent edits any event without resetting its approval state.
// PUT /api/admin/events/{id}
func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	event, err := h.DB.EventByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	var req eventRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	updated := *event
	updated.Title = req.Title
	updated.Description = req.Description
	updated.Category = req.Category
	updated.Date = req.Date
	updated.Time = req.Time
	updated.Location = req.Location
	updated.IsOnline = req.IsOnline
	updated.OnlineLink = req.OnlineLink
	updated.MaxAttendees = req.MaxAttendees
	updated.Image = req.Image
	updated.Tags = req.Tags
	updated.Price = req.Price
	updated.IsPaid = req.IsPaid
	updated.RegistrationDeadline = req.RegistrationDeadline
	if err := updated.Validate(time.Now()); err != nil {
		respondError(w, err)
		return
	}
	fresh, err := h.DB.UpdateEventFields(r.Context(), id, bson.M{
		"title":                updated.Title,
		"description":          updated.Description,
		"category":             updated.Category,
		"date":                 updated.Date,
		"time":                 updated.Time,
		"location":             updated.Location,
		"isOnline":             updated.IsOnline,
		"onlineLink":           updated.OnlineLink,
		"maxAttendees":         updated.MaxAttendees,
		"image":                updated.Image,
		"tags":                 updated.Tags,
		"price":                updated.Price,
		"isPaid":               updated.IsPaid,
		"registrationDeadline": updated.RegistrationDeadline,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Event updated successfully", map[string]any{"event": fresh.View()})
}

// SetEventStatus approves or rejects an event.
// PUT /api/admin/events/{id}/status
func (h *AdminHandler) SetEventStatus(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		IsApproved bool `json:"isApproved"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	event, err := h.DB.UpdateEventFields(r.Context(), id, bson.M{"isApproved": req.IsApproved})
	if err != nil {
		respondError(w, err)
		return
	}
	msg := "Event rejected"
	if req.IsApproved {
		msg = "Event approved"
	}
	respondMessage(w, http.StatusOK, msg, map[string]any{"event": event.View()})
}

// DeleteEvent removes any event. DELETE /api/admin/events/{id}
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.DB.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Event deleted successfully"})
}

// ListAuthors returns the full author catalog, including authors with
// no books yet. GET /api/admin/authors
func (h *AdminHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 20)
	q := r.URL.Query()
	authors, total, err := h.DB.ListAuthors(r.Context(), store.AuthorFilter{
		Search: q.Get("search"),
		SortBy: q.Get("sortBy"),
		Skip:   skip,
		Limit:  int64(limit),
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

// AuthorsDropdown returns id, name and book count for every author.
// GET /api/admin/authors/list
func (h *AdminHandler) AuthorsDropdown(w http.ResponseWriter, r *http.Request) {
	authors, err := h.DB.AuthorsForDropdown(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"authors": authors})
}

// GetAuthor returns one author by id. GET /api/admin/authors/{id}
func (h *AdminHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	author, err := h.DB.AuthorByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"author": author})
}

type authorRequest struct {
	Name        string             `json:"name"`
	Bio         string             `json:"bio"`
	Image       models.Image       `json:"image"`
	BirthDate   *time.Time         `json:"birthDate"`
	Nationality string             `json:"nationality"`
	Website     string             `json:"website"`
	SocialLinks models.SocialLinks `json:"socialLinks"`
	Genres      []string           `json:"genres"`
	Awards      []models.Award     `json:"awards"`
	IsVerified  bool               `json:"isVerified"`
}

// CreateAuthor adds an author to the catalog; the slug derives from
// the name. POST /api/admin/authors
func (h *AdminHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	author := &models.Author{
		Name:        req.Name,
		Bio:         req.Bio,
		Image:       req.Image,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
		Website:     req.Website,
		SocialLinks: req.SocialLinks,
		Genres:      req.Genres,
		Awards:      req.Awards,
		IsVerified:  req.IsVerified,
	}
	if err := author.Validate(); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.DB.InsertAuthor(r.Context(), author)
	if err != nil {
		respondError(w, err)
		return
	}
	author.ID = id
	respondMessage(w, http.StatusCreated, "Author created successfully", map[string]any{"author": author})
}

// UpdateAuthor edits an author; a changed name re-derives the slug.
// PUT /api/admin/authors/{id}
func (h *AdminHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	author, err := h.DB.AuthorByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	var req authorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	updated := *author
	updated.Name = req.Name
	updated.Bio = req.Bio
	updated.Image = req.Image
	updated.BirthDate = req.BirthDate
	updated.Nationality = req.Nationality
	updated.Website = req.Website
	updated.SocialLinks = req.SocialLinks
	updated.Genres = req.Genres
	updated.Awards = req.Awards
	updated.IsVerified = req.IsVerified
	if err := updated.Validate(); err != nil {
		respondError(w, err)
		return
	}
	fresh, err := h.DB.UpdateAuthorFields(r.Context(), id, bson.M{
		"name":        updated.Name,
		"bio":         updated.Bio,
		"image":       updated.Image,
		"birthDate":   updated.BirthDate,
		"nationality": updated.Nationality,
		"website":     updated.Website,
		"socialLinks": updated.SocialLinks,
		"genres":      updated.Genres,
		"awards":      updated.Awards,
		"isVerified":  updated.IsVerified,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Author updated successfully", map[string]any{"author": fresh})
}

// DeleteAuthor removes an author and their ratings. Blocked while any
// book still references the author. DELETE /api/admin/authors/{id}
func (h *AdminHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	inUse, err := h.DB.CountBooks(r.Context(), bson.M{"authorId": id})
	if err != nil {
		respondError(w, err)
		return
	}
	if inUse > 0 {
		respondError(w, apperr.ValidationMsg("Cannot delete author with existing books. Reassign or delete the books first."))
		return
	}
	if err := h.DB.DeleteAuthor(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	if err := h.DB.DeleteRatingsForAuthor(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Author deleted successfully"})
}
