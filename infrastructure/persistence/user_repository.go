package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"meetfood/domain/model"
	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

// UserRepository is the MongoDB implementation of repository.IUser.
type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.IUser {
	return &UserRepository{users: db.Collection(usersCollection)}
}

func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetBySubject(ctx context.Context, subject string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"userId": subject})
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"userName": userName})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	if err := r.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		logger.GetLogger().WithField("error", err).Error("mongo: query user failed")
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*model.User, error) {
	result := make(map[bson.ObjectID]*model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: query users by ids failed")
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding user")
			continue
		}
		u := user
		result[u.ID] = &u
	}
	return result, cursor.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	_, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateUserName
	}
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":    err,
			"userName": user.UserName,
		}).Error("mongo: create user failed")
	}
	return err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, userName, firstName, lastName string) error {
	update := bson.M{"$set": bson.M{
		"userName":  userName,
		"firstName": firstName,
		"lastName":  lastName,
	}}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateUserName
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfilePhoto(ctx context.Context, id bson.ObjectID, photoURL string) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"profilePhoto": photoURL}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

// addRef pushes postID onto the named list only when absent; the match count
// reports whether the membership actually changed.
func (r *UserRepository) addRef(ctx context.Context, id, postID bson.ObjectID, field string) (bool, error) {
	filter := bson.M{"_id": id, field: bson.M{"$ne": postID}}
	update := bson.M{"$push": bson.M{field: postID}}
	res, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"error": err, "field": field}).Error("mongo: add reference failed")
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *UserRepository) removeRef(ctx context.Context, id, postID bson.ObjectID, field string) (bool, error) {
	filter := bson.M{"_id": id, field: postID}
	update := bson.M{"$pull": bson.M{field: postID}}
	res, err := r.users.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"error": err, "field": field}).Error("mongo: remove reference failed")
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *UserRepository) AddLikedVideo(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	return r.addRef(ctx, id, postID, "likedVideos")
}

func (r *UserRepository) RemoveLikedVideo(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	return r.removeRef(ctx, id, postID, "likedVideos")
}

func (r *UserRepository) AddCollection(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	return r.addRef(ctx, id, postID, "collections")
}

func (r *UserRepository) RemoveCollection(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	return r.removeRef(ctx, id, postID, "collections")
}

func (r *UserRepository) RemoveVideoRef(ctx context.Context, id, postID bson.ObjectID) error {
	_, err := r.removeRef(ctx, id, postID, "videos")
	return err
}
