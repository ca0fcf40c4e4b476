package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"teammatch/internal/apptypes"
	"teammatch/internal/config"
)

// s3PutObjectAPI is the subset of *s3.Client used for uploads.
type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3StorageService implements apptypes.StorageService on an S3 compatible bucket.
type S3StorageService struct {
	client    s3PutObjectAPI
	bucket    string
	publicURL string
}

// NewS3StorageService builds an S3 client from static credentials. Endpoint, if
// set, points the client at an S3 compatible server such as MinIO.
func NewS3StorageService(ctx context.Context, cfg config.S3Config) (apptypes.StorageService, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("s3 storage: bucket name is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 storage: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3StorageService(client, cfg.BucketName, s3PublicURL(cfg)), nil
}

// s3PublicURL is the prefix of picture URLs: PublicURL when set, the bucket
// under a custom endpoint (path style), or the bucket's virtual-hosted AWS URL.
func s3PublicURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return cfg.PublicURL
	case cfg.Endpoint != "":
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.BucketName
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketName, cfg.Region)
	}
}

func newS3StorageService(client s3PutObjectAPI, bucket, publicURL string) *S3StorageService {
	return &S3StorageService{client: client, bucket: bucket, publicURL: strings.TrimSuffix(publicURL, "/")}
}

// ProfilePictureKey returns a new object key for a picture with extension ext.
func ProfilePictureKey(ext string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("profile-pictures/%d/%02d/%s%s", d.Year(), d.Month(), uuid.New(), ext)
}

func (s *S3StorageService) UploadFile(ctx context.Context, reader io.Reader, fileSize int64, fileName string, mimeType string) (*apptypes.FileInfo, error) {
	key := ProfilePictureKey(fileExtension(fileName, mimeType))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if fileSize >= 0 {
		input.ContentLength = aws.Int64(fileSize)
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 storage: failed to put object %s: %w", key, err)
	}

	return &apptypes.FileInfo{
		URL:      s.publicURL + "/" + key,
		Path:     key,
		Size:     fileSize,
		MimeType: mimeType,
		FileName: fileName,
	}, nil
}
