package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/models"
)

func upcomingEvent(maxAttendees int) *models.Event {
	return &models.Event{
		Title:        "Poetry Night",
		Description:  "An evening of readings",
		Category:     "Poetry",
		Date:         time.Now().Add(48 * time.Hour),
		Time:         "7:00 PM",
		Location:     "City Library",
		MaxAttendees: maxAttendees,
	}
}

func Test_Event_Register_FillsToCapacity(t *testing.T) {
	event := upcomingEvent(2)
	now := time.Now()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	require.NoError(t, event.Register(alice, now))
	require.NoError(t, event.Register(bob, now))
	assert.True(t, event.IsFull())
	assert.Equal(t, 0, event.AvailableSpots())

	err := event.Register(carol, now)
	require.Error(t, err)
	assert.Equal(t, apperr.KindRegistrationClosed, apperr.KindOf(err))
	assert.Equal(t, 2, event.AttendeeCount())
}

func Test_Event_Register_DuplicateRejected(t *testing.T) {
	event := upcomingEvent(5)
	now := time.Now()
	user := primitive.NewObjectID()

	require.NoError(t, event.Register(user, now))
	err := event.Register(user, now)
	require.Error(t, err)
	assert.Equal(t, apperr.KindRegistrationClosed, apperr.KindOf(err))
	assert.Equal(t, 1, event.AttendeeCount())
}

func Test_Event_Register_AfterDeadlineRejected(t *testing.T) {
	event := upcomingEvent(5)
	deadline := time.Now().Add(-time.Hour)
	event.RegistrationDeadline = &deadline

	err := event.Register(primitive.NewObjectID(), time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindRegistrationClosed, apperr.KindOf(err))
}

func Test_Event_Register_PastEventRejected(t *testing.T) {
	event := upcomingEvent(5)
	event.Date = time.Now().Add(-time.Hour)

	err := event.Register(primitive.NewObjectID(), time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindRegistrationClosed, apperr.KindOf(err))
}

func Test_Event_Unregister_KeepsHistory(t *testing.T) {
	event := upcomingEvent(2)
	now := time.Now()
	user := primitive.NewObjectID()

	require.NoError(t, event.Register(user, now))
	require.NoError(t, event.Unregister(user))

	// The cancelled entry stays in the list but frees the spot.
	assert.Len(t, event.Attendees, 1)
	assert.Equal(t, models.AttendeeCancelled, event.Attendees[0].Status)
	assert.Equal(t, 0, event.AttendeeCount())
	assert.Equal(t, 2, event.AvailableSpots())
	assert.False(t, event.IsRegistered(user))
}

func Test_Event_Unregister_NotRegistered(t *testing.T) {
	event := upcomingEvent(2)

	err := event.Unregister(primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotRegistered, apperr.KindOf(err))
}

func Test_Event_ReRegisterAfterCancel_AppendsNewEntry(t *testing.T) {
	event := upcomingEvent(3)
	now := time.Now()
	user := primitive.NewObjectID()

	require.NoError(t, event.Register(user, now))
	require.NoError(t, event.Unregister(user))
	require.NoError(t, event.Register(user, now.Add(time.Minute)))

	assert.Len(t, event.Attendees, 2)
	assert.Equal(t, 1, event.AttendeeCount())
	assert.True(t, event.IsRegistered(user))
}

func Test_Event_Validate(t *testing.T) {
	now := time.Now()

	t.Run("valid_event", func(t *testing.T) {
		assert.NoError(t, upcomingEvent(100).Validate(now))
	})

	t.Run("past_date_rejected", func(t *testing.T) {
		event := upcomingEvent(100)
		event.Date = now.Add(-time.Hour)
		err := event.Validate(now)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("online_event_needs_link", func(t *testing.T) {
		event := upcomingEvent(100)
		event.IsOnline = true
		assert.Error(t, event.Validate(now))
		event.OnlineLink = "https://meet.example.com/poetry"
		assert.NoError(t, event.Validate(now))
	})

	t.Run("deadline_after_date_rejected", func(t *testing.T) {
		event := upcomingEvent(100)
		late := event.Date.Add(time.Hour)
		event.RegistrationDeadline = &late
		assert.Error(t, event.Validate(now))
	})

	t.Run("capacity_bounds", func(t *testing.T) {
		assert.Error(t, upcomingEvent(0).Validate(now))
		assert.Error(t, upcomingEvent(10001).Validate(now))
		assert.NoError(t, upcomingEvent(10000).Validate(now))
	})
}
