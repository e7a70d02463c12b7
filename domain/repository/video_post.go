package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
)

// IVideoPost is the persistence contract for video post documents.
//
// The engagement mutations (AddLike, RemoveLike, PushComment, PullComment,
// AddCollectionCount) adjust the affected list and its counter in a single
// conditional document update, so a counter can never drift from its list
// under concurrent requests.
type IVideoPost interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*model.VideoPost, error)
	GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.VideoPost, error)
	FindAll(ctx context.Context) ([]*model.VideoPost, error)
	FindByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*model.VideoPost, error)

	// CreateForOwner inserts the post and appends its id to the owner's
	// videos list inside one session transaction.
	CreateForOwner(ctx context.Context, post *model.VideoPost) error
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByOwner(ctx context.Context, ownerID bson.ObjectID) error

	AddLike(ctx context.Context, postID bson.ObjectID, like model.Like) error
	RemoveLike(ctx context.Context, postID, userID bson.ObjectID) error
	AddCollectionCount(ctx context.Context, postID bson.ObjectID, delta int) error

	PushComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) error
	PullComment(ctx context.Context, postID, commentID bson.ObjectID) error
}
