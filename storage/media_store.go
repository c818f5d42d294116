package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	appconfig "vidtube-api/config"
	"vidtube-api/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Folders group uploaded objects by kind.
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)

var ErrForeignURL = errors.New("url does not belong to the media store")

// Asset is a stored object and the public URL clients use to fetch it.
type Asset struct {
	Key string
	URL string
}

// MediaStore keeps user-uploaded files.
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*Asset, error)
	Delete(ctx context.Context, url string) error
}

// objectAPI is the subset of *s3.Client the store calls.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3MediaStore stores media in an S3-compatible bucket (AWS or MinIO).
type S3MediaStore struct {
	client  objectAPI
	bucket  string
	baseURL string
}

// NewS3MediaStore builds a client from static credentials when they are configured
// and falls back to the default AWS credential chain otherwise.
func NewS3MediaStore(ctx context.Context, cfg appconfig.MediaConfig) (*S3MediaStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("media.bucket must be set")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3MediaStore(client, cfg), nil
}

func newS3MediaStore(client objectAPI, cfg appconfig.MediaConfig) *S3MediaStore {
	base := cfg.PublicBaseURL
	if base == "" {
		base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return &S3MediaStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(base, "/"),
	}
}

// Upload writes body under folder with a fresh key that keeps the original extension.
func (s *S3MediaStore) Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*Asset, error) {
	key := path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	log := logger.Log.WithFields(logrus.Fields{"bucket": s.bucket, "key": key, "size": size})
	log.Info("Uploading media object")

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		log.WithError(err).Error("Failed to upload media object")
		return nil, fmt.Errorf("put object: %w", err)
	}
	return &Asset{Key: key, URL: s.baseURL + "/" + key}, nil
}

// Delete removes the object behind url. Empty URLs are a no-op.
func (s *S3MediaStore) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	key, err := s.KeyFromURL(url)
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{"bucket": s.bucket, "key": key}).Info("Deleting media object")
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// KeyFromURL recovers the object key from a URL produced by Upload.
func (s *S3MediaStore) KeyFromURL(url string) (string, error) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", ErrForeignURL
	}
	return key, nil
}
