package store

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	log.Println("Connected to MongoDB")
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Users() *mongo.Collection {
	return db.Database.Collection("users")
}

func (db *DB) Books() *mongo.Collection {
	return db.Database.Collection("books")
}

func (db *DB) Reviews() *mongo.Collection {
	return db.Database.Collection("bookreviews")
}

func (db *DB) Authors() *mongo.Collection {
	return db.Database.Collection("authors")
}

func (db *DB) AuthorRatings() *mongo.Collection {
	return db.Database.Collection("authorratings")
}

func (db *DB) Events() *mongo.Collection {
	return db.Database.Collection("events")
}

func (db *DB) Posts() *mongo.Collection {
	return db.Database.Collection("posts")
}

func (db *DB) Comments() *mongo.Collection {
	return db.Database.Collection("comments")
}

// EnsureIndexes creates the unique and search indexes the repositories
// rely on. Safe to run on every startup.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{db.Users(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: sparseUnique},
		}},
		{db.Books(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "isbn", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "authorId", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "averageRating", Value: -1}}},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "author", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}}},
		}},
		{db.Reviews(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "book", Value: 1}, {Key: "user", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "book", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
		{db.Authors(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "bio", Value: "text"}}},
		}},
		{db.AuthorRatings(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "user", Value: 1}}, Options: unique},
		}},
		{db.Events(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "organizer", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "isApproved", Value: 1}}},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}, {Key: "tags", Value: "text"}}},
		}},
		{db.Posts(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}, {Key: "tags", Value: "text"}}},
		}},
		{db.Comments(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "post", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
	}

	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateMany(ctx, s.models); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}
