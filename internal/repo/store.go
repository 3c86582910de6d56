package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the single owner of the Mongo client and every collection handle.
// It is constructed once at startup and injected into the handlers; nothing
// reads ambient database state.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewStore(ctx context.Context, uri, dbname string) (*Store, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &Store{Client: cli, DB: cli.Database(dbname)}, nil
}

func (s *Store) users() *mongo.Collection    { return s.DB.Collection("users") }
func (s *Store) articles() *mongo.Collection { return s.DB.Collection("articles") }
func (s *Store) likes() *mongo.Collection    { return s.DB.Collection("likes") }
func (s *Store) comments() *mongo.Collection { return s.DB.Collection("comments") }
func (s *Store) fuel() *mongo.Collection     { return s.DB.Collection("fuel_prices") }

// EnsureIndexes creates every index the service relies on. The unique indexes
// double as the only concurrency guards (one like per IP per article, one fuel
// document per date+state).
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}); err != nil {
		return err
	}
	if _, err := s.likes().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "article_id", Value: 1}, {Key: "user_ip", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := s.comments().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "article_id", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return err
	}
	_, err := s.fuel().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "state", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
