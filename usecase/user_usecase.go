package usecase

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

// Profile is the authenticated user's own view: the account document with
// the three post reference lists resolved into full posts.
type Profile struct {
	model.User
	VideoList      []model.FeedItem `json:"videoList"`
	CollectionList []model.FeedItem `json:"collectionList"`
	LikedList      []model.FeedItem `json:"likedList"`
}

type IUserUsecase interface {
	Register(ctx context.Context, subject, email string) (*model.User, error)
	GetProfile(ctx context.Context, userID bson.ObjectID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID bson.ObjectID, subject string, req model.ReqUpdateProfile) (*model.User, error)
	UpdateProfilePhoto(ctx context.Context, userID bson.ObjectID, asset AssetUpload) (*model.User, error)
	DeleteAccount(ctx context.Context, userID bson.ObjectID, email string) error
	AddToCollection(ctx context.Context, userID, postID bson.ObjectID) (*model.VideoPost, error)
	RemoveFromCollection(ctx context.Context, userID, postID bson.ObjectID) (*model.VideoPost, error)
}

type userUsecase struct {
	userRepo   repository.IUser
	postRepo   repository.IVideoPost
	storage    repository.IAssetStorage
	identity   repository.IIdentityProvider
	tokenCache repository.ITokenCache
}

func NewUserUsecase(
	userRepo repository.IUser,
	postRepo repository.IVideoPost,
	storage repository.IAssetStorage,
	identity repository.IIdentityProvider,
	tokenCache repository.ITokenCache,
) IUserUsecase {
	return &userUsecase{
		userRepo:   userRepo,
		postRepo:   postRepo,
		storage:    storage,
		identity:   identity,
		tokenCache: tokenCache,
	}
}

// Register links the externally verified subject to a new local user record.
// The display name is derived from the email prefix; on collision the
// subject is appended as a disambiguating suffix.
func (u *userUsecase) Register(ctx context.Context, subject, email string) (*model.User, error) {
	if existing, err := u.userRepo.GetBySubject(ctx, subject); err == nil && existing != nil {
		return nil, repository.ErrDuplicateUser
	}

	userName := email
	if idx := strings.LastIndex(email, "@"); idx > 0 {
		userName = email[:idx]
	}
	if _, err := u.userRepo.GetByUserName(ctx, userName); err == nil {
		userName = userName + subject
	}

	user := &model.User{
		UserID:      subject,
		UserName:    userName,
		Email:       email,
		Videos:      []bson.ObjectID{},
		Collections: []bson.ObjectID{},
		LikedVideos: []bson.ObjectID{},
		CreatedTime: time.Now().UTC(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating user")
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) GetProfile(ctx context.Context, userID bson.ObjectID) (*Profile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: *user}
	if profile.VideoList, err = u.resolveRefs(ctx, user.Videos); err != nil {
		return nil, err
	}
	if profile.CollectionList, err = u.resolveRefs(ctx, user.Collections); err != nil {
		return nil, err
	}
	if profile.LikedList, err = u.resolveRefs(ctx, user.LikedVideos); err != nil {
		return nil, err
	}
	return profile, nil
}

// resolveRefs loads referenced posts and resolves their authors. Posts that
// have since been deleted are silently skipped.
func (u *userUsecase) resolveRefs(ctx context.Context, ids []bson.ObjectID) ([]model.FeedItem, error) {
	if len(ids) == 0 {
		return []model.FeedItem{}, nil
	}
	posts, err := u.postRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return resolvePosts(ctx, u.userRepo, posts)
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID bson.ObjectID, subject string, req model.ReqUpdateProfile) (*model.User, error) {
	if other, err := u.userRepo.GetByUserName(ctx, req.UserName); err == nil && other.UserID != subject {
		return nil, repository.ErrDuplicateUserName
	}
	if err := u.userRepo.UpdateProfile(ctx, userID, req.UserName, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfilePhoto stores the new photo, replaces the reference, then
// best-effort deletes the previous object. The store-new / delete-old order
// means a failure can strand the old object but never the user record.
func (u *userUsecase) UpdateProfilePhoto(ctx context.Context, userID bson.ObjectID, asset AssetUpload) (*model.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photoURL, err := u.storage.Upload(ctx, repository.AssetProfilePhoto, asset.Filename, asset.Body, asset.Size)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while uploading profile photo")
		return nil, err
	}

	if user.ProfilePhoto != "" {
		if err := u.storage.Delete(ctx, repository.AssetProfilePhoto, user.ProfilePhoto); err != nil {
			return nil, err
		}
	}

	if err := u.userRepo.UpdateProfilePhoto(ctx, userID, photoURL); err != nil {
		return nil, err
	}
	user.ProfilePhoto = photoURL
	return user, nil
}

// DeleteAccount cascades: profile photo, owned posts and their assets, the
// user document, then the identity-provider account. Each step is an
// independently committed write; a failure partway through is surfaced to
// the caller and not rolled back.
func (u *userUsecase) DeleteAccount(ctx context.Context, userID bson.ObjectID, email string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.ProfilePhoto != "" {
		if err := u.storage.Delete(ctx, repository.AssetProfilePhoto, user.ProfilePhoto); err != nil {
			return err
		}
	}

	posts, err := u.postRepo.FindByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for _, post := range posts {
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
	}

	if err := u.postRepo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	u.tokenCache.Invalidate(ctx, user.UserID)

	if err := u.identity.DeleteUser(ctx, email); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"email": email,
		}).Error("Error while deleting identity-provider account")
		return err
	}
	return nil
}

// AddToCollection adds the post to the user's collection list and bumps the
// post's collection counter. The membership guard and the counter increment
// are each a single conditional document update; the two documents remain
// independently committed.
func (u *userUsecase) AddToCollection(ctx context.Context, userID, postID bson.ObjectID) (*model.VideoPost, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := u.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	added, err := u.userRepo.AddCollection(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, repository.ErrAlreadyCollected
	}
	if err := u.postRepo.AddCollectionCount(ctx, postID, 1); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, postID)
}

func (u *userUsecase) RemoveFromCollection(ctx context.Context, userID, postID bson.ObjectID) (*model.VideoPost, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	removed, err := u.userRepo.RemoveCollection(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, repository.ErrNotCollected
	}
	if err := u.postRepo.AddCollectionCount(ctx, postID, -1); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, postID)
}
