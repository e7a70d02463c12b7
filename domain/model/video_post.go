package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Address is the restaurant location attached to a video post.
type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode int    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
}

// Like records a single user's like on a post. At most one entry per user.
type Like struct {
	UserSub string        `bson:"userSub,omitempty" json:"userSub,omitempty"`
	User    bson.ObjectID `bson:"user" json:"user"`
}

// Comment is embedded in a VideoPost, newest first.
type Comment struct {
	ID   bson.ObjectID `bson:"_id" json:"_id"`
	User bson.ObjectID `bson:"user" json:"user"`
	Text string        `bson:"text" json:"text"`
	Date time.Time     `bson:"date" json:"date"`
}

// VideoPost is a user-submitted video with engagement counters kept in sync
// with their corresponding list lengths.
type VideoPost struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID            bson.ObjectID `bson:"userId" json:"userId"`
	PostTitle         string        `bson:"postTitle" json:"postTitle"`
	VideoURL          string        `bson:"videoUrl" json:"videoUrl"`
	CoverImageURL     string        `bson:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
	RestaurantName    string        `bson:"restaurantName,omitempty" json:"restaurantName,omitempty"`
	RestaurantAddress Address       `bson:"restaurantAddress,omitempty" json:"restaurantAddress,omitempty"`
	OrderedVia        string        `bson:"orderedVia,omitempty" json:"orderedVia,omitempty"`
	PostTime          time.Time     `bson:"postTime" json:"postTime"`
	CountComment      int           `bson:"countComment" json:"countComment"`
	CountLike         int           `bson:"countLike" json:"countLike"`
	CountCollections  int           `bson:"countCollections" json:"countCollections"`
	Likes             []Like        `bson:"likes" json:"likes"`
	Comments          []Comment     `bson:"comments" json:"comments"`
}

// Popularity is the derived ranking score: a weighted sum of the collection
// and like counters.
func (p *VideoPost) Popularity() float64 {
	return 0.7*float64(p.CountCollections) + 0.3*float64(p.CountLike)
}

// LikedBy reports whether userID already appears in the post's like list.
func (p *VideoPost) LikedBy(userID bson.ObjectID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// ResolvedComment is a comment with the author's public fields resolved at
// read time. A dangling author reference degrades to the zero values while
// text and date are preserved.
type ResolvedComment struct {
	Text   string    `json:"text"`
	Avatar string    `json:"avatar"`
	Name   string    `json:"name"`
	User   string    `json:"user"`
	Date   time.Time `json:"date"`
}

// FeedItem is a ranked post with its author and comments resolved.
type FeedItem struct {
	VideoPost
	Popularity float64           `json:"popularity"`
	Author     PublicProfile     `json:"author"`
	Resolved   []ResolvedComment `json:"commentList"`
}
