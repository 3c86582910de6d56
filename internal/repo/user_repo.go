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

// IsDup reports whether err is a unique-index violation.
func IsDup(err error) bool { return mongo.IsDuplicateKeyError(err) }

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	res, err := s.users().InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	var u domain.User
	err := s.users().FindOne(ctx, bson.M{"mobile": mobile}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByGoogleID(ctx context.Context, sub string) (*domain.User, error) {
	var u domain.User
	err := s.users().FindOne(ctx, bson.M{"google_id": sub}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AttachGoogle promotes an existing local account: the Google subject is linked
// instead of creating a duplicate user for the same email.
func (s *Store) AttachGoogle(ctx context.Context, id primitive.ObjectID, sub, avatar string) error {
	set := bson.M{"google_id": sub, "verified": true, "updated_at": time.Now().UTC()}
	if avatar != "" {
		set["avatar"] = avatar
	}
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// SetResetToken stores a fresh token and expiry on the user record, replacing
// any previous one.
func (s *Store) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_token":   token,
		"reset_expires": expires.UTC(),
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// FindUserByResetToken matches a still-valid token. Read-only: used by the
// verify endpoint, which must not consume the token.
func (s *Store) FindUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	err := s.users().FindOne(ctx, bson.M{
		"reset_token":   token,
		"reset_expires": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ConsumeResetToken validates the token, swaps in the new password hash and
// clears the token fields in one FindOneAndUpdate, so a token can never be
// replayed inside its window.
func (s *Store) ConsumeResetToken(ctx context.Context, token, passwordHash string) (*domain.User, error) {
	res := s.users().FindOneAndUpdate(ctx,
		bson.M{
			"reset_token":   token,
			"reset_expires": bson.M{"$gt": time.Now().UTC()},
		},
		bson.M{
			"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"reset_token": "", "reset_expires": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var u domain.User
	if err := res.Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile changes name and email; the unique email index rejects
// collisions that slip past the pre-check.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*domain.User, error) {
	res := s.users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "email": email, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var u domain.User
	if err := res.Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
