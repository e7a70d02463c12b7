package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a customer account backed by an external identity provider.
// UserID carries the provider subject; ID is the local document id.
type User struct {
	ID           bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID       string          `bson:"userId" json:"userId"`
	Email        string          `bson:"email" json:"email"`
	UserName     string          `bson:"userName" json:"userName"`
	FirstName    string          `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string          `bson:"lastName,omitempty" json:"lastName,omitempty"`
	ProfilePhoto string          `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	Videos       []bson.ObjectID `bson:"videos" json:"videos"`
	Collections  []bson.ObjectID `bson:"collections" json:"collections"`
	LikedVideos  []bson.ObjectID `bson:"likedVideos" json:"likedVideos"`
	CreatedTime  time.Time       `bson:"createdTime" json:"createdTime"`
}

// PublicProfile is the subset of user fields exposed on posts and comments.
type PublicProfile struct {
	ID           string `json:"_id"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	ProfilePhoto string `json:"profilePhoto"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:           u.ID.Hex(),
		UserID:       u.UserID,
		UserName:     u.UserName,
		ProfilePhoto: u.ProfilePhoto,
	}
}
