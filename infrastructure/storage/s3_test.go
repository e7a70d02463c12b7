package storage

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetfood/domain/repository"
	"meetfood/infrastructure/configuration"
)

type stubS3 struct {
	putInput    *s3.PutObjectInput
	deleteInput *s3.DeleteObjectInput
	putErr      error
	deleteErr   error
}

func (s *stubS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.putInput = params
	return &s3.PutObjectOutput{}, s.putErr
}

func (s *stubS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.deleteInput = params
	return &s3.DeleteObjectOutput{}, s.deleteErr
}

func testConfig() configuration.S3 {
	return configuration.S3{
		VideoBucket:           "video-bucket",
		CoverImageBucket:      "cover-bucket",
		ProfilePhotoBucket:    "photo-bucket",
		VideoURLPrefix:        "https://videos.example",
		CoverImageURLPrefix:   "https://covers.example/",
		ProfilePhotoURLPrefix: "https://photos.example",
	}
}

func TestS3AssetStorage_Upload(t *testing.T) {
	stub := &stubS3{}
	store := newWithClient(stub, testConfig())
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := store.Upload(context.Background(), repository.AssetVideo, "my dinner.mp4", strings.NewReader("data"), 4)

	require.NoError(t, err)
	require.NotNil(t, stub.putInput)
	assert.Equal(t, "video-bucket", *stub.putInput.Bucket)
	assert.Equal(t, int64(4), *stub.putInput.ContentLength)

	key := *stub.putInput.Key
	assert.True(t, strings.HasPrefix(key, "1700000000000-"), key)
	assert.True(t, strings.HasSuffix(key, "-my_dinner.mp4"), key)
	assert.Equal(t, "https://videos.example/"+key, url)
}

func TestS3AssetStorage_Upload_TrimsPrefixSlash(t *testing.T) {
	stub := &stubS3{}
	store := newWithClient(stub, testConfig())

	url, err := store.Upload(context.Background(), repository.AssetCoverImage, "a.jpg", strings.NewReader("x"), 1)

	require.NoError(t, err)
	assert.False(t, strings.Contains(url, "example//"), url)
	assert.True(t, strings.HasPrefix(url, "https://covers.example/"), url)
}

func TestS3AssetStorage_Upload_UniqueKeys(t *testing.T) {
	stub := &stubS3{}
	store := newWithClient(stub, testConfig())

	first, err := store.Upload(context.Background(), repository.AssetVideo, "a.mp4", strings.NewReader("x"), 1)
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), repository.AssetVideo, "a.mp4", strings.NewReader("x"), 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestS3AssetStorage_Delete_UsesBaseName(t *testing.T) {
	stub := &stubS3{}
	store := newWithClient(stub, testConfig())

	err := store.Delete(context.Background(), repository.AssetProfilePhoto, "https://photos.example/123-abcd-me.jpg")

	require.NoError(t, err)
	require.NotNil(t, stub.deleteInput)
	assert.Equal(t, "photo-bucket", *stub.deleteInput.Bucket)
	assert.Equal(t, "123-abcd-me.jpg", *stub.deleteInput.Key)
}

func TestS3AssetStorage_UnconfiguredBucket(t *testing.T) {
	stub := &stubS3{}
	cfg := testConfig()
	cfg.VideoBucket = ""
	store := newWithClient(stub, cfg)

	_, err := store.Upload(context.Background(), repository.AssetVideo, "a.mp4", strings.NewReader("x"), 1)
	assert.Error(t, err)
	assert.Nil(t, stub.putInput)

	err = store.Delete(context.Background(), repository.AssetVideo, "https://videos.example/a.mp4")
	assert.Error(t, err)
}

func TestS3AssetStorage_KeyTimestampAdvances(t *testing.T) {
	stub := &stubS3{}
	store := newWithClient(stub, testConfig())

	calls := 0
	store.now = func() time.Time {
		calls++
		return time.UnixMilli(int64(calls))
	}

	_, err := store.Upload(context.Background(), repository.AssetVideo, "a.mp4", strings.NewReader("x"), 1)
	require.NoError(t, err)
	firstKey := *stub.putInput.Key
	_, err = store.Upload(context.Background(), repository.AssetVideo, "a.mp4", strings.NewReader("x"), 1)
	require.NoError(t, err)
	secondKey := *stub.putInput.Key

	firstTS, err := strconv.Atoi(strings.SplitN(firstKey, "-", 2)[0])
	require.NoError(t, err)
	secondTS, err := strconv.Atoi(strings.SplitN(secondKey, "-", 2)[0])
	require.NoError(t, err)
	assert.Greater(t, secondTS, firstTS)
}
