package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
)

// IUser is the persistence contract for user documents.
type IUser interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	GetBySubject(ctx context.Context, subject string) (*model.User, error)
	GetByUserName(ctx context.Context, userName string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id bson.ObjectID, userName, firstName, lastName string) error
	UpdateProfilePhoto(ctx context.Context, id bson.ObjectID, photoURL string) error
	Delete(ctx context.Context, id bson.ObjectID) error

	// Paired-list membership updates. The Add variants report whether the
	// post was actually added (false means it was already present), so the
	// caller can keep the post-side counter in step.
	AddLikedVideo(ctx context.Context, id, postID bson.ObjectID) (bool, error)
	RemoveLikedVideo(ctx context.Context, id, postID bson.ObjectID) (bool, error)
	AddCollection(ctx context.Context, id, postID bson.ObjectID) (bool, error)
	RemoveCollection(ctx context.Context, id, postID bson.ObjectID) (bool, error)
	RemoveVideoRef(ctx context.Context, id, postID bson.ObjectID) error
}
