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

func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}
	if user.Bio == "" {
		user.Bio = models.DefaultBio
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	res, err := db.Users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Duplicate("phone or email already exists")
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"phone": phone}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserFields applies a partial $set update and returns the fresh
// document.
func (db *DB) UpdateUserFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	fields["updatedAt"] = time.Now()
	var u models.User
	err := db.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Search string
	Skip   int64
	Limit  int64
}

// ListUsers returns non-superadmin users, newest first, with the total
// matching count.
func (db *DB) ListUsers(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	filter := bson.M{"role": bson.M{"$ne": models.RoleSuperAdmin}}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	total, err := db.Users().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := db.Users().Find(ctx, filter, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(f.Skip).
		SetLimit(f.Limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (db *DB) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	return db.Users().CountDocuments(ctx, bson.M{"role": role})
}

func (db *DB) RecentUsers(ctx context.Context, limit int64) ([]models.User, error) {
	cur, err := db.Users().Find(ctx, bson.M{"role": models.RoleUser}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetProjection(bson.M{"name": 1, "avatar": 1, "createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserRefsByIDs loads slim user projections for attaching to documents
// that reference them. Missing IDs are simply absent from the map.
func (db *DB) UserRefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserRef, error) {
	refs := make(map[primitive.ObjectID]*models.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	cur, err := db.Users().Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "avatar": 1, "bio": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.UserRef
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		refs[users[i].ID] = &users[i]
	}
	return refs, nil
}
