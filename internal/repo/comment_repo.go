package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	c.CreatedAt = time.Now().UTC()
	res, err := s.comments().InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// ListComments returns an article's comments newest-first.
func (s *Store) ListComments(ctx context.Context, articleID primitive.ObjectID) ([]domain.Comment, error) {
	cur, err := s.comments().Find(ctx,
		bson.M{"article_id": articleID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Comment{}
	for cur.Next(ctx) {
		var c domain.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// DeleteComment reports whether a comment was actually removed.
func (s *Store) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.comments().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
