package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the identity record. PasswordHash is empty for Google-only accounts;
// GoogleID is empty for local ones. Email is the stable identity key.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name"           json:"name"`
	Email        string             `bson:"email"          json:"email"`
	Mobile       string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	GoogleID     string             `bson:"google_id,omitempty" json:"-"`
	Verified     bool               `bson:"verified"       json:"verified"`

	// Reset token lifecycle: set by forgot-password, cleared atomically when
	// consumed. A token is usable only while ResetExpires is in the future.
	ResetToken   string     `bson:"reset_token,omitempty"   json:"-"`
	ResetExpires *time.Time `bson:"reset_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
