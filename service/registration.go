package service

import (
	"context"
	"time"

	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registrations drives the event attendee state machine: it loads the
// event, applies the register/unregister transition in memory, and
// persists the whole attendee list. There is no store-level guard
// against two concurrent registrations on a nearly-full event; callers
// needing strict capacity enforcement would have to add one.
type Registrations struct {
	DB *store.DB
}

func NewRegistrations(db *store.DB) *Registrations {
	return &Registrations{DB: db}
}

// Register adds the user to the event. Fails with RegistrationClosed
// when the event is full, past its deadline or date, or the user is
// already registered; NotFound when the event does not exist.
func (r *Registrations) Register(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	event, err := r.DB.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.Register(userID, time.Now()); err != nil {
		return nil, err
	}
	if err := r.DB.UpdateEventAttendees(ctx, event.ID, event.Attendees); err != nil {
		return nil, err
	}
	return event, nil
}

// Unregister cancels the user's registered entry, keeping it in the
// list as history. Fails with NotRegistered when no such entry exists.
func (r *Registrations) Unregister(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	event, err := r.DB.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.Unregister(userID); err != nil {
		return nil, err
	}
	if err := r.DB.UpdateEventAttendees(ctx, event.ID, event.Attendees); err != nil {
		return nil, err
	}
	return event, nil
}
