package model

// ReqCreateUser is the registration body. The subject comes from the token.
type ReqCreateUser struct {
	Email string `json:"email" binding:"required,email"`
}

// ReqUpdateProfile carries the three mutable profile fields.
type ReqUpdateProfile struct {
	UserName  string `json:"userName" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ReqDeleteAccount identifies the provider account to remove.
type ReqDeleteAccount struct {
	Email string `json:"email" binding:"required,email"`
}

// ReqCreateVideoPost is the body for creating a post. The video and cover
// image must already be uploaded; only their URLs are recorded here.
type ReqCreateVideoPost struct {
	PostTitle         string  `json:"postTitle" binding:"required"`
	ImageURL          string  `json:"imageUrl" binding:"required"`
	VideoURL          string  `json:"videoUrl" binding:"required"`
	RestaurantName    string  `json:"restaurantName" binding:"required"`
	RestaurantAddress Address `json:"restaurantAddress"`
	OrderedVia        string  `json:"orderedVia"`
}

// ReqPostComment is the body for commenting on a post.
type ReqPostComment struct {
	Text string `json:"text" binding:"required"`
}

// FeedQuery holds pagination and sort parameters for the video feed.
type FeedQuery struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder int
}
