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

type EventsHandler struct {
	DB            *store.DB
	Registrations *service.Registrations
}

func eventViews(events []models.Event) []models.EventView {
	views := make([]models.EventView, len(events))
	for i := range events {
		views[i] = events[i].View()
	}
	return views
}

// List returns approved events sorted by date. GET /api/events
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 12)
	q := r.URL.Query()
	events, total, err := h.DB.ListEvents(r.Context(), store.EventFilter{
		Search:       q.Get("search"),
		Category:     q.Get("category"),
		UpcomingOnly: q.Get("upcoming") == "true",
		ApprovedOnly: true,
		Skip:         skip,
		Limit:        int64(limit),
	})
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

// Get returns a single approved event. GET /api/events/{id}
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	if !event.IsApproved {
		respondError(w, apperr.NotFound("Event not available"))
		return
	}
	events := []models.Event{*event}
	if err := attachEventOrganizers(r.Context(), h.DB, events); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"event": events[0].View()})
}

type eventRequest struct {
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Category             string       `json:"category"`
	Date                 time.Time    `json:"date"`
	Time                 string       `json:"time"`
	Location             string       `json:"location"`
	IsOnline             bool         `json:"isOnline"`
	OnlineLink           string       `json:"onlineLink"`
	MaxAttendees         int          `json:"maxAttendees"`
	Image                models.Image `json:"image"`
	Tags                 []string     `json:"tags"`
	Price                float64      `json:"price"`
	IsPaid               bool         `json:"isPaid"`
	RegistrationDeadline *time.Time   `json:"registrationDeadline"`
}

// Create submits a new event for approval. POST /api/events
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
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
		Organizer:            userID,
		Image:                req.Image,
		Tags:                 req.Tags,
		Price:                req.Price,
		IsPaid:               req.IsPaid,
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
	respondMessage(w, http.StatusCreated, "Event submitted for review", map[string]any{"event": event.View()})
}

// Update edits an owned event; the edit sends it back for re-approval.
// Attendees are never touched here. PUT /api/events/{id}
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
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
	if event.Organizer != userID {
		respondError(w, apperr.Forbidden("Not authorized to update this event"))
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
		"isApproved":           false, // require re-approval after edit
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Event updated and sent for re-approval", map[string]any{"event": fresh.View()})
}

// Delete removes an owned event. DELETE /api/events/{id}
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
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
	if event.Organizer != userID {
		respondError(w, apperr.Forbidden("Not authorized to delete this event"))
		return
	}
	if err := h.DB.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Event deleted successfully"})
}

// MyEvents lists events the caller organizes, approved or not.
// GET /api/events/my-events
func (h *EventsHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := h.DB.EventsByOrganizer(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"events": eventViews(events)})
}

// Registered lists events the caller holds a registered entry for.
// GET /api/events/registered
func (h *EventsHandler) Registered(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := h.DB.EventsRegisteredBy(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachEventOrganizers(r.Context(), h.DB, events); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"events": eventViews(events)})
}

// Register registers the caller for an event.
// POST /api/events/{id}/register
func (h *EventsHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	event, err := h.Registrations.Register(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Registered for event successfully", map[string]any{
		"attendeeCount":  event.AttendeeCount(),
		"availableSpots": event.AvailableSpots(),
	})
}

// Unregister cancels the caller's registration.
// POST /api/events/{id}/unregister
func (h *EventsHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	event, err := h.Registrations.Unregister(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Unregistered from event successfully", map[string]any{
		"attendeeCount":  event.AttendeeCount(),
		"availableSpots": event.AvailableSpots(),
	})
}
