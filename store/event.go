package store

import (
	"context"
	"time"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertEvent(ctx context.Context, event *models.Event) (primitive.ObjectID, error) {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Attendees == nil {
		event.Attendees = []models.Attendee{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}
	res, err := db.Events().InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) EventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := db.Events().FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Event not found")
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEventFields applies a partial $set update and returns the
// fresh document.
func (db *DB) UpdateEventFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Event, error) {
	fields["updatedAt"] = time.Now()
	var event models.Event
	err := db.Events().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Event not found")
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEventAttendees persists the attendee list after a register or
// unregister transition.
func (db *DB) UpdateEventAttendees(ctx context.Context, id primitive.ObjectID, attendees []models.Attendee) error {
	_, err := db.Events().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"attendees": attendees,
		"updatedAt": time.Now(),
	}})
	return err
}

func (db *DB) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Events().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("Event not found")
	}
	return nil
}

type EventFilter struct {
	Search       string
	Category     string
	UpcomingOnly bool
	ApprovedOnly bool
	Pending      bool
	Skip         int64
	Limit        int64
}

func (f EventFilter) query() bson.M {
	filter := bson.M{}
	if f.ApprovedOnly {
		filter["isApproved"] = true
	}
	if f.Pending {
		filter["isApproved"] = false
	}
	if f.UpcomingOnly {
		filter["date"] = bson.M{"$gte": time.Now()}
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.Category != "" && f.Category != "All" {
		filter["category"] = f.Category
	}
	return filter
}

func (db *DB) ListEvents(ctx context.Context, f EventFilter) ([]models.Event, int64, error) {
	filter := f.query()
	total, err := db.Events().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: -1}}).
		SetSkip(f.Skip)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := db.Events().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (db *DB) EventsByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]models.Event, error) {
	cur, err := db.Events().Find(ctx, bson.M{"organizer": organizerID},
		options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EventsRegisteredBy returns events where the user holds a registered
// attendee entry.
func (db *DB) EventsRegisteredBy(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	filter := bson.M{"attendees": bson.M{"$elemMatch": bson.M{
		"user":   userID,
		"status": models.AttendeeRegistered,
	}}}
	cur, err := db.Events().Find(ctx, filter, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *DB) CountEvents(ctx context.Context, filter bson.M) (int64, error) {
	return db.Events().CountDocuments(ctx, filter)
}

func (db *DB) RecentEvents(ctx context.Context, limit int64) ([]models.Event, error) {
	cur, err := db.Events().Find(ctx, bson.M{}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
