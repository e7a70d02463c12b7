package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"meetfood/domain/model"
	"meetfood/domain/repository"
	"meetfood/interfaces/middleware"
)

// Mock implementations

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

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
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, userName, firstName, lastName string) error {
	return m.Called(ctx, id, userName, firstName, lastName).Error(0)
}

func (m *MockUserRepository) UpdateProfilePhoto(ctx context.Context, id bson.ObjectID, photoURL string) error {
	return m.Called(ctx, id, photoURL).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
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
	return m.Called(ctx, id, postID).Error(0)
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

type authCapture struct {
	status  int
	userSub string
	userID  string
	hasID   bool
}

func runAuth(t *testing.T, verifier *MockTokenVerifier, users *MockUserRepository, cache *MockTokenCache, token string) authCapture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got authCapture
	router := gin.New()
	router.Use(middleware.Auth(verifier, users, cache))
	router.GET("/probe", func(c *gin.Context) {
		got.userSub = c.GetString(middleware.CtxUserSub)
		_, got.hasID = c.Get(middleware.CtxUserID)
		got.userID = c.GetString(middleware.CtxUserID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	got.status = rec.Code
	return got
}

func TestAuth_MissingToken(t *testing.T) {
	got := runAuth(t, new(MockTokenVerifier), new(MockUserRepository), new(MockTokenCache), "")
	assert.Equal(t, http.StatusUnauthorized, got.status)
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := new(MockTokenVerifier)
	verifier.On("Verify", mock.Anything, "bad-token").Return("", assert.AnError).Once()

	got := runAuth(t, verifier, new(MockUserRepository), new(MockTokenCache), "bad-token")

	assert.Equal(t, http.StatusUnauthorized, got.status)
	verifier.AssertExpectations(t)
}

func TestAuth_LinkedUser(t *testing.T) {
	verifier := new(MockTokenVerifier)
	users := new(MockUserRepository)
	cache := new(MockTokenCache)

	user := &model.User{ID: bson.NewObjectID(), UserID: "sub-1"}
	verifier.On("Verify", mock.Anything, "token").Return("sub-1", nil).Once()
	cache.On("GetUserID", mock.Anything, "sub-1").Return("", false).Once()
	users.On("GetBySubject", mock.Anything, "sub-1").Return(user, nil).Once()
	cache.On("SetUserID", mock.Anything, "sub-1", user.ID.Hex()).Once()

	got := runAuth(t, verifier, users, cache, "token")

	assert.Equal(t, http.StatusOK, got.status)
	assert.Equal(t, "sub-1", got.userSub)
	assert.Equal(t, user.ID.Hex(), got.userID)
	cache.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAuth_CacheHitSkipsLookup(t *testing.T) {
	verifier := new(MockTokenVerifier)
	users := new(MockUserRepository)
	cache := new(MockTokenCache)

	verifier.On("Verify", mock.Anything, "token").Return("sub-1", nil).Once()
	cache.On("GetUserID", mock.Anything, "sub-1").Return("cached-id", true).Once()

	got := runAuth(t, verifier, users, cache, "token")

	assert.Equal(t, http.StatusOK, got.status)
	assert.Equal(t, "cached-id", got.userID)
	users.AssertNotCalled(t, "GetBySubject", mock.Anything, mock.Anything)
}

func TestAuth_UnlinkedSubjectStillPasses(t *testing.T) {
	// Registration arrives before a local record exists, so a verified token
	// without a user must continue with only the subject attached.
	verifier := new(MockTokenVerifier)
	users := new(MockUserRepository)
	cache := new(MockTokenCache)

	verifier.On("Verify", mock.Anything, "token").Return("sub-new", nil).Once()
	cache.On("GetUserID", mock.Anything, "sub-new").Return("", false).Once()
	users.On("GetBySubject", mock.Anything, "sub-new").Return(nil, repository.ErrUserNotFound).Once()

	got := runAuth(t, verifier, users, cache, "token")

	assert.Equal(t, http.StatusOK, got.status)
	assert.Equal(t, "sub-new", got.userSub)
	assert.False(t, got.hasID)
	cache.AssertNotCalled(t, "SetUserID", mock.Anything, mock.Anything, mock.Anything)
}
