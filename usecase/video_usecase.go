package usecase

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

// AssetUpload is a multipart file relayed unmodified to object storage.
type AssetUpload struct {
	Filename string
	Body     io.Reader
	Size     int64
}

type IVideoUsecase interface {
	GetPost(ctx context.Context, postID bson.ObjectID) (*model.FeedItem, error)
	CreatePost(ctx context.Context, userID bson.ObjectID, req model.ReqCreateVideoPost) (*model.VideoPost, error)
	DeletePost(ctx context.Context, userID, postID bson.ObjectID) error
	Like(ctx context.Context, userID bson.ObjectID, subject string, postID bson.ObjectID) (*model.FeedItem, error)
	Unlike(ctx context.Context, userID, postID bson.ObjectID) (*model.FeedItem, error)
	PostComment(ctx context.Context, userID, postID bson.ObjectID, text string) (*model.FeedItem, error)
	DeleteComment(ctx context.Context, postID, commentID bson.ObjectID) error
	UploadCoverImage(ctx context.Context, userID bson.ObjectID, asset AssetUpload) (string, error)
	UploadVideo(ctx context.Context, userID bson.ObjectID, asset AssetUpload) (string, error)
}

type videoUsecase struct {
	postRepo repository.IVideoPost
	userRepo repository.IUser
	storage  repository.IAssetStorage
}

func NewVideoUsecase(postRepo repository.IVideoPost, userRepo repository.IUser, storage repository.IAssetStorage) IVideoUsecase {
	return &videoUsecase{postRepo: postRepo, userRepo: userRepo, storage: storage}
}

func (u *videoUsecase) GetPost(ctx context.Context, postID bson.ObjectID) (*model.FeedItem, error) {
	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return resolvePost(ctx, u.userRepo, post)
}

// CreatePost inserts the post and appends the reference to the owner's
// videos list inside one storage transaction.
func (u *videoUsecase) CreatePost(ctx context.Context, userID bson.ObjectID, req model.ReqCreateVideoPost) (*model.VideoPost, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	post := &model.VideoPost{
		ID:                bson.NewObjectID(),
		UserID:            userID,
		PostTitle:         req.PostTitle,
		VideoURL:          req.VideoURL,
		CoverImageURL:     req.ImageURL,
		RestaurantName:    req.RestaurantName,
		RestaurantAddress: req.RestaurantAddress,
		OrderedVia:        req.OrderedVia,
		PostTime:          time.Now().UTC(),
		Likes:             []model.Like{},
		Comments:          []model.Comment{},
	}
	if err := u.postRepo.CreateForOwner(ctx, post); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating video post")
		return nil, err
	}
	return post, nil
}

// DeletePost is owner-gated. The database records go first, then the storage
// objects best effort; a storage failure is surfaced but the records stay
// deleted.
func (u *videoUsecase) DeletePost(ctx context.Context, userID, postID bson.ObjectID) error {
	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	if err := u.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if err := u.userRepo.RemoveVideoRef(ctx, userID, postID); err != nil {
		return err
	}

	if post.VideoURL != "" {
		if err := u.storage.Delete(ctx, repository.AssetVideo, post.VideoURL); err != nil {
			return err
		}
	}
	if post.CoverImageURL != "" {
		if err := u.storage.Delete(ctx, repository.AssetCoverImage, post.CoverImageURL); err != nil {
			return err
		}
	}
	return nil
}

// Like appends the user to the post's like list and increments countLike in
// one conditional update, then records the post on the user's liked list.
func (u *videoUsecase) Like(ctx context.Context, userID bson.ObjectID, subject string, postID bson.ObjectID) (*model.FeedItem, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	like := model.Like{User: userID, UserSub: subject}
	if err := u.postRepo.AddLike(ctx, postID, like); err != nil {
		return nil, err
	}
	if _, err := u.userRepo.AddLikedVideo(ctx, userID, postID); err != nil {
		return nil, err
	}

	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return resolvePost(ctx, u.userRepo, post)
}

func (u *videoUsecase) Unlike(ctx context.Context, userID, postID bson.ObjectID) (*model.FeedItem, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := u.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	if _, err := u.userRepo.RemoveLikedVideo(ctx, userID, postID); err != nil {
		return nil, err
	}

	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return resolvePost(ctx, u.userRepo, post)
}

// PostComment prepends a comment with a server timestamp. The author must
// resolve to an existing user at write time.
func (u *videoUsecase) PostComment(ctx context.Context, userID, postID bson.ObjectID, text string) (*model.FeedItem, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:   bson.NewObjectID(),
		User: userID,
		Text: text,
		Date: time.Now().UTC(),
	}
	if err := u.postRepo.PushComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return resolvePost(ctx, u.userRepo, post)
}

// DeleteComment removes the matching entry by id. Deletion is not restricted
// to the comment's author.
func (u *videoUsecase) DeleteComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	return u.postRepo.PullComment(ctx, postID, commentID)
}

func (u *videoUsecase) UploadCoverImage(ctx context.Context, userID bson.ObjectID, asset AssetUpload) (string, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}
	return u.storage.Upload(ctx, repository.AssetCoverImage, asset.Filename, asset.Body, asset.Size)
}

func (u *videoUsecase) UploadVideo(ctx context.Context, userID bson.ObjectID, asset AssetUpload) (string, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}
	return u.storage.Upload(ctx, repository.AssetVideo, asset.Filename, asset.Body, asset.Size)
}
