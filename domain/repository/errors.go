package repository

import "errors"

var (
	// ErrUserNotFound indicates no user document matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound indicates no video post matches the lookup.
	ErrPostNotFound = errors.New("video post not found")
	// ErrCommentNotFound indicates the comment id is absent from the post.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrAlreadyLiked indicates the user already appears in the post's like list.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked indicates the user is absent from the post's like list.
	ErrNotLiked = errors.New("post has not yet been liked")
	// ErrAlreadyCollected indicates the post is already in the user's collection.
	ErrAlreadyCollected = errors.New("video already in collection")
	// ErrNotCollected indicates the post is absent from the user's collection.
	ErrNotCollected = errors.New("video not in collection")
	// ErrDuplicateUserName indicates the display name is taken by another user.
	ErrDuplicateUserName = errors.New("user name already exists")
	// ErrDuplicateUser indicates the subject is already registered.
	ErrDuplicateUser = errors.New("user already registered")
)
