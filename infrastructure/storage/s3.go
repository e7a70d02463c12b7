package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"meetfood/domain/repository"
	"meetfood/infrastructure/configuration"
	"meetfood/infrastructure/logger"
)

// s3API is the slice of the S3 client this store uses; tests stub it.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type bucket struct {
	name      string
	urlPrefix string
}

// S3AssetStorage stores binary assets with one bucket and public URL prefix
// per asset class. Public URLs follow {prefix}/{key}.
type S3AssetStorage struct {
	client  s3API
	buckets map[repository.AssetClass]bucket
	now     func() time.Time
}

// NewS3AssetStorage builds the store from configuration. Static credentials
// take precedence; otherwise the default AWS credential chain applies.
func NewS3AssetStorage(ctx context.Context, cfg configuration.S3) (*S3AssetStorage, error) {
	var client *s3.Client
	if cfg.AccessKeyID != "" {
		client = s3.New(s3.Options{
			Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			Region:      cfg.Region,
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed to load AWS configuration")
			return nil, err
		}
		client = s3.NewFromConfig(awsCfg)
	}
	return newWithClient(client, cfg), nil
}

func newWithClient(client s3API, cfg configuration.S3) *S3AssetStorage {
	return &S3AssetStorage{
		client: client,
		buckets: map[repository.AssetClass]bucket{
			repository.AssetVideo:        {name: cfg.VideoBucket, urlPrefix: cfg.VideoURLPrefix},
			repository.AssetCoverImage:   {name: cfg.CoverImageBucket, urlPrefix: cfg.CoverImageURLPrefix},
			repository.AssetProfilePhoto: {name: cfg.ProfilePhotoBucket, urlPrefix: cfg.ProfilePhotoURLPrefix},
		},
		now: time.Now,
	}
}

// Upload relays the body to the class bucket under a timestamped key and
// returns the public URL. Uploads are never retried; the caller surfaces
// failures to the client.
func (s *S3AssetStorage) Upload(ctx context.Context, class repository.AssetClass, filename string, body io.Reader, size int64) (string, error) {
	b, ok := s.buckets[class]
	if !ok || b.name == "" {
		return "", fmt.Errorf("no bucket configured for asset class %q", class)
	}

	key := s.objectKey(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.name),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":  err,
			"bucket": b.name,
			"key":    key,
		}).Error("Error occurred while trying to upload to S3 bucket")
		return "", err
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(b.urlPrefix, "/"), key), nil
}

// Delete removes the object named by the public URL's base name from the
// class bucket. Best effort: a missing object is not an error at S3.
func (s *S3AssetStorage) Delete(ctx context.Context, class repository.AssetClass, publicURL string) error {
	b, ok := s.buckets[class]
	if !ok || b.name == "" {
		return fmt.Errorf("no bucket configured for asset class %q", class)
	}

	key := path.Base(publicURL)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":  err,
			"bucket": b.name,
			"key":    key,
		}).Error("Error occurred while trying to delete from S3 bucket")
	}
	return err
}

// objectKey prefixes the original base name with a millisecond timestamp and
// a short random salt so repeated uploads of the same file never collide.
func (s *S3AssetStorage) objectKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, " ", "_"))
	salt := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), salt, base)
}
