package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories an article or comment may belong to.
var Categories = []string{
	"Technology", "Business", "Science", "Environment",
	"Health", "Entertainment", "Sports", "Education",
	"Stories", "Information", "Updates", "Insights",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Article carries a denormalized like counter; the source of truth for who
// liked it is the likes collection.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title"        json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Content     string             `bson:"content,omitempty"     json:"content,omitempty"`
	Category    string             `bson:"category,omitempty"    json:"category,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty"   json:"image_url,omitempty"`
	Likes       int64              `bson:"likes"        json:"likes"`
	CreatedAt   time.Time          `bson:"created_at"   json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"   json:"updated_at"`
}

// Like is one (article, client IP) pair. The compound unique index on
// (article_id, user_ip) is the concurrency guard for the toggle operation.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArticleID primitive.ObjectID `bson:"article_id"    json:"article_id"`
	UserIP    string             `bson:"user_ip"       json:"-"`
	CreatedAt time.Time          `bson:"created_at"    json:"created_at"`
}

// Comment is append-only; no edit operation exists.
type Comment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"    json:"id"`
	ArticleID       primitive.ObjectID `bson:"article_id"       json:"articleId"`
	ArticleCategory string             `bson:"article_category" json:"articleCategory"`
	Content         string             `bson:"content"          json:"content"`
	Author          string             `bson:"author"           json:"author"`
	Email           string             `bson:"email"            json:"email"`
	Mobile          string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"       json:"createdAt"`
}

const MaxCommentLength = 1000
