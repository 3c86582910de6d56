package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

// ToggleLike flips the like state for (articleID, ip) and keeps the article's
// denormalized counter in step with the like rows.
//
// Insert-first: the unique (article_id, user_ip) index turns racing duplicate
// inserts into a single winner. The loser sees a duplicate-key error and
// reports "already liked" without touching the counter, so two concurrent
// toggles from the same IP produce exactly one net state change. The delete
// path only decrements when a row was actually removed, and the decrement is
// guarded by likes > 0 so the counter never goes negative.
func (s *Store) ToggleLike(ctx context.Context, articleID primitive.ObjectID, ip string) (liked bool, likes int64, err error) {
	var existing domain.Like
	err = s.likes().FindOne(ctx, bson.M{"article_id": articleID, "user_ip": ip}).Decode(&existing)
	switch err {
	case nil:
		// unlike
		res, derr := s.likes().DeleteOne(ctx, bson.M{"_id": existing.ID})
		if derr != nil {
			return false, 0, derr
		}
		if res.DeletedCount == 0 {
			// a concurrent toggle removed it first; counter already adjusted
			likes, derr = s.articleLikes(ctx, articleID)
			return false, likes, derr
		}
		likes, derr = s.decArticleLikes(ctx, articleID)
		return false, likes, derr
	case mongo.ErrNoDocuments:
		// like
		_, ierr := s.likes().InsertOne(ctx, domain.Like{
			ArticleID: articleID,
			UserIP:    ip,
			CreatedAt: time.Now().UTC(),
		})
		if ierr != nil {
			if IsDup(ierr) {
				// lost the race: already liked, no-op
				likes, lerr := s.articleLikes(ctx, articleID)
				return true, likes, lerr
			}
			return false, 0, ierr
		}
		likes, ierr = s.incArticleLikes(ctx, articleID)
		return true, likes, ierr
	default:
		return false, 0, err
	}
}

// HasLike reports whether ip currently holds a like row for the article.
func (s *Store) HasLike(ctx context.Context, articleID primitive.ObjectID, ip string) (bool, error) {
	err := s.likes().FindOne(ctx, bson.M{"article_id": articleID, "user_ip": ip}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) CountLikes(ctx context.Context, articleID primitive.ObjectID) (int64, error) {
	return s.likes().CountDocuments(ctx, bson.M{"article_id": articleID})
}

func (s *Store) articleLikes(ctx context.Context, id primitive.ObjectID) (int64, error) {
	a, err := s.FindArticleByID(ctx, id)
	if err != nil || a == nil {
		return 0, err
	}
	return a.Likes, nil
}

func (s *Store) incArticleLikes(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res := s.articles().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var a domain.Article
	if err := res.Decode(&a); err != nil {
		return 0, err
	}
	return a.Likes, nil
}

// decArticleLikes floors the counter at zero: the filter refuses to decrement
// a counter that is already 0.
func (s *Store) decArticleLikes(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res := s.articles().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "likes": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"likes": -1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var a domain.Article
	err := res.Decode(&a)
	if err == mongo.ErrNoDocuments {
		return s.articleLikes(ctx, id)
	}
	if err != nil {
		return 0, err
	}
	return a.Likes, nil
}
