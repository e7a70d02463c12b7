package usecase_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
	"meetfood/domain/repository"
)

// Mock implementations

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetBySubject(ctx context.Context, subject string) (*model.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[bson.ObjectID]*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, userName, firstName, lastName string) error {
	args := m.Called(ctx, id, userName, firstName, lastName)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfilePhoto(ctx context.Context, id bson.ObjectID, photoURL string) error {
	args := m.Called(ctx, id, photoURL)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) AddLikedVideo(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) RemoveLikedVideo(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AddCollection(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) RemoveCollection(ctx context.Context, id, postID bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) RemoveVideoRef(ctx context.Context, id, postID bson.ObjectID) error {
	args := m.Called(ctx, id, postID)
	return args.Error(0)
}

type MockVideoPostRepository struct {
	mock.Mock
}

func (m *MockVideoPostRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.VideoPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoPost), args.Error(1)
}

func (m *MockVideoPostRepository) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.VideoPost, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoPost), args.Error(1)
}

func (m *MockVideoPostRepository) FindAll(ctx context.Context) ([]*model.VideoPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoPost), args.Error(1)
}

func (m *MockVideoPostRepository) FindByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*model.VideoPost, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoPost), args.Error(1)
}

func (m *MockVideoPostRepository) CreateForOwner(ctx context.Context, post *model.VideoPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockVideoPostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoPostRepository) DeleteByOwner(ctx context.Context, ownerID bson.ObjectID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockVideoPostRepository) AddLike(ctx context.Context, postID bson.ObjectID, like model.Like) error {
	args := m.Called(ctx, postID, like)
	return args.Error(0)
}

func (m *MockVideoPostRepository) RemoveLike(ctx context.Context, postID, userID bson.ObjectID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockVideoPostRepository) AddCollectionCount(ctx context.Context, postID bson.ObjectID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockVideoPostRepository) PushComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) error {
	args := m.Called(ctx, postID, comment)
	return args.Error(0)
}

func (m *MockVideoPostRepository) PullComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	args := m.Called(ctx, postID, commentID)
	return args.Error(0)
}

type MockAssetStorage struct {
	mock.Mock
}

func (m *MockAssetStorage) Upload(ctx context.Context, class repository.AssetClass, filename string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, class, filename, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStorage) Delete(ctx context.Context, class repository.AssetClass, publicURL string) error {
	args := m.Called(ctx, class, publicURL)
	return args.Error(0)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) GetUserID(ctx context.Context, subject string) (string, bool) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Bool(1)
}

func (m *MockTokenCache) SetUserID(ctx context.Context, subject, userID string) {
	m.Called(ctx, subject, userID)
}

func (m *MockTokenCache) Invalidate(ctx context.Context, subject string) {
	m.Called(ctx, subject)
}
