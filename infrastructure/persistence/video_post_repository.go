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

// VideoPostRepository is the MongoDB implementation of repository.IVideoPost.
// Engagement mutations pair a list update with its counter in one conditional
// document update, so a counter never drifts from its list under concurrent
// requests on the same post.
type VideoPostRepository struct {
	client *mongo.Client
	posts  *mongo.Collection
	users  *mongo.Collection
}

func NewVideoPostRepository(client *mongo.Client, db *mongo.Database) repository.IVideoPost {
	return &VideoPostRepository{
		client: client,
		posts:  db.Collection(videoPostsCollection),
		users:  db.Collection(usersCollection),
	}
}

func (r *VideoPostRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.VideoPost, error) {
	var post model.VideoPost
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPostNotFound
		}
		logger.GetLogger().WithField("error", err).Error("mongo: query video post failed")
		return nil, err
	}
	return &post, nil
}

func (r *VideoPostRepository) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.VideoPost, error) {
	if len(ids) == 0 {
		return []*model.VideoPost{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *VideoPostRepository) FindAll(ctx context.Context) ([]*model.VideoPost, error) {
	return r.find(ctx, bson.M{})
}

func (r *VideoPostRepository) FindByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*model.VideoPost, error) {
	return r.find(ctx, bson.M{"userId": ownerID})
}

func (r *VideoPostRepository) find(ctx context.Context, filter bson.M) ([]*model.VideoPost, error) {
	cursor, err := r.posts.Find(ctx, filter)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: query video posts failed")
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	posts := make([]*model.VideoPost, 0)
	for cursor.Next(ctx) {
		var post model.VideoPost
		if err := cursor.Decode(&post); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding video post")
			continue
		}
		p := post
		posts = append(posts, &p)
	}
	return posts, cursor.Err()
}

// CreateForOwner inserts the post and appends its id to the owner's videos
// list inside one session transaction.
func (r *VideoPostRepository) CreateForOwner(ctx context.Context, post *model.VideoPost) error {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}

	session, err := r.client.StartSession()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: start session failed")
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		if _, err := r.posts.InsertOne(ctx, post); err != nil {
			return nil, err
		}
		res, err := r.users.UpdateOne(ctx,
			bson.M{"_id": post.UserID},
			bson.M{"$push": bson.M{"videos": post.ID}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, repository.ErrUserNotFound
		}
		return nil, nil
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: create video post transaction failed")
	}
	return err
}

func (r *VideoPostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}

func (r *VideoPostRepository) DeleteByOwner(ctx context.Context, ownerID bson.ObjectID) error {
	_, err := r.posts.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}

func (r *VideoPostRepository) AddLike(ctx context.Context, postID bson.ObjectID, like model.Like) error {
	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": like.User}}
	update := bson.M{
		"$push": bson.M{"likes": bson.M{"$each": bson.A{like}, "$position": 0}},
		"$inc":  bson.M{"countLike": 1},
	}
	res, err := r.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: add like failed")
		return err
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, postID, repository.ErrAlreadyLiked)
	}
	return nil
}

func (r *VideoPostRepository) RemoveLike(ctx context.Context, postID, userID bson.ObjectID) error {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{
		"$pull": bson.M{"likes": bson.M{"user": userID}},
		"$inc":  bson.M{"countLike": -1},
	}
	res, err := r.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: remove like failed")
		return err
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, postID, repository.ErrNotLiked)
	}
	return nil
}

func (r *VideoPostRepository) AddCollectionCount(ctx context.Context, postID bson.ObjectID, delta int) error {
	res, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"countCollections": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}

func (r *VideoPostRepository) PushComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) error {
	update := bson.M{
		"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}},
		"$inc":  bson.M{"countComment": 1},
	}
	res, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: push comment failed")
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}

func (r *VideoPostRepository) PullComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$inc":  bson.M{"countComment": -1},
	}
	res, err := r.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mongo: pull comment failed")
		return err
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, postID, repository.ErrCommentNotFound)
	}
	return nil
}

// missOrConflict distinguishes a missing post from a failed membership guard
// after a conditional update matched nothing.
func (r *VideoPostRepository) missOrConflict(ctx context.Context, postID bson.ObjectID, conflict error) error {
	count, err := r.posts.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrPostNotFound
	}
	return conflict
}
