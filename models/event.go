package models

import (
	"time"

	"github.com/wordingo/backend/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var EventCategories = []string{
	"Poetry", "Launch", "Workshop", "Discussion", "Reading",
	"Meetup", "Conference", "Other",
}

// Attendee statuses. An entry moves registered → cancelled (or
// attended) and never back; cancelled entries are kept as history.
const (
	AttendeeRegistered = "registered"
	AttendeeAttended   = "attended"
	AttendeeCancelled  = "cancelled"
)

type Attendee struct {
	User         primitive.ObjectID `bson:"user" json:"user"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
	Status       string             `bson:"status" json:"status"`
}

type Event struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Category             string             `bson:"category" json:"category"`
	Date                 time.Time          `bson:"date" json:"date"`
	Time                 string             `bson:"time" json:"time"`
	Location             string             `bson:"location" json:"location"`
	IsOnline             bool               `bson:"isOnline" json:"isOnline"`
	OnlineLink           string             `bson:"onlineLink,omitempty" json:"onlineLink,omitempty"`
	MaxAttendees         int                `bson:"maxAttendees" json:"maxAttendees"`
	Attendees            []Attendee         `bson:"attendees" json:"attendees"`
	Organizer            primitive.ObjectID `bson:"organizer" json:"organizer"`
	Image                Image              `bson:"image,omitempty" json:"image,omitempty"`
	Tags                 []string           `bson:"tags" json:"tags"`
	Price                float64            `bson:"price" json:"price"`
	IsPaid               bool               `bson:"isPaid" json:"isPaid"`
	IsApproved           bool               `bson:"isApproved" json:"isApproved"`
	RegistrationDeadline *time.Time         `bson:"registrationDeadline,omitempty" json:"registrationDeadline,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated on reads, not stored.
	OrganizerInfo *UserRef `bson:"-" json:"organizerInfo,omitempty"`
}

// Validate checks the schema constraints for a new event. The
// date-in-the-future rule applies at creation time only.
func (e *Event) Validate(now time.Time) error {
	var errs []apperr.FieldError
	errs = requireString(errs, "title", e.Title, 200)
	errs = requireString(errs, "description", e.Description, 2000)
	errs = requireOneOf(errs, "category", e.Category, EventCategories)
	if e.Date.IsZero() {
		errs = append(errs, apperr.FieldError{Field: "date", Message: "Event date is required"})
	} else if !e.Date.After(now) {
		errs = append(errs, apperr.FieldError{Field: "date", Message: "Event date must be in the future"})
	}
	errs = requireString(errs, "time", e.Time, 0)
	errs = requireString(errs, "location", e.Location, 300)
	if e.IsOnline && e.OnlineLink == "" {
		errs = append(errs, apperr.FieldError{Field: "onlineLink", Message: "Valid online link is required for online events"})
	}
	if e.OnlineLink != "" && !isHTTPURL(e.OnlineLink) {
		errs = append(errs, apperr.FieldError{Field: "onlineLink", Message: "Valid online link is required for online events"})
	}
	if e.MaxAttendees < 1 {
		errs = append(errs, apperr.FieldError{Field: "maxAttendees", Message: "At least 1 attendee allowed"})
	} else if e.MaxAttendees > 10000 {
		errs = append(errs, apperr.FieldError{Field: "maxAttendees", Message: "Maximum 10000 attendees allowed"})
	}
	if e.Price < 0 {
		errs = append(errs, apperr.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if e.RegistrationDeadline != nil && e.RegistrationDeadline.After(e.Date) {
		errs = append(errs, apperr.FieldError{Field: "registrationDeadline", Message: "Registration deadline must be before event date"})
	}
	return asError(errs)
}

// AttendeeCount is the number of attendees currently registered,
// always derived from the live list.
func (e *Event) AttendeeCount() int {
	n := 0
	for _, a := range e.Attendees {
		if a.Status == AttendeeRegistered {
			n++
		}
	}
	return n
}

func (e *Event) AvailableSpots() int {
	return e.MaxAttendees - e.AttendeeCount()
}

func (e *Event) IsFull() bool {
	return e.AttendeeCount() >= e.MaxAttendees
}

func (e *Event) IsRegistered(userID primitive.ObjectID) bool {
	for _, a := range e.Attendees {
		if a.User == userID && a.Status == AttendeeRegistered {
			return true
		}
	}
	return false
}

// CanRegister reports whether userID may register at time now: the
// event is not full, registration has not closed, the event has not
// passed, and the user holds no registered entry.
func (e *Event) CanRegister(userID primitive.ObjectID, now time.Time) bool {
	if e.IsFull() {
		return false
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	if now.After(e.Date) {
		return false
	}
	return !e.IsRegistered(userID)
}

// Register appends a fresh registered entry for userID. A previously
// cancelled entry is never reused; history is append-only.
func (e *Event) Register(userID primitive.ObjectID, now time.Time) error {
	if !e.CanRegister(userID, now) {
		return apperr.RegistrationClosed("Cannot register for this event. Event may be full, registration closed, or you are already registered.")
	}
	e.Attendees = append(e.Attendees, Attendee{
		User:         userID,
		RegisteredAt: now,
		Status:       AttendeeRegistered,
	})
	return nil
}

// Unregister flips the user's registered entry to cancelled. The entry
// is retained so the list length never shrinks.
func (e *Event) Unregister(userID primitive.ObjectID) error {
	for i := range e.Attendees {
		if e.Attendees[i].User == userID && e.Attendees[i].Status == AttendeeRegistered {
			e.Attendees[i].Status = AttendeeCancelled
			return nil
		}
	}
	return apperr.NotRegistered("User is not registered for this event")
}

// EventView adds the derived attendance fields to an event for
// responses.
type EventView struct {
	*Event
	AttendeeCount  int  `json:"attendeeCount"`
	AvailableSpots int  `json:"availableSpots"`
	IsFull         bool `json:"isFull"`
}

func (e *Event) View() EventView {
	return EventView{
		Event:          e,
		AttendeeCount:  e.AttendeeCount(),
		AvailableSpots: e.AvailableSpots(),
		IsFull:         e.IsFull(),
	}
}
