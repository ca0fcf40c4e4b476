package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/internal/config"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_UploadFile(t *testing.T) {
	fake := &fakePutObject{}
	svc := newS3StorageService(fake, "pictures", "https://cdn.example.com/pictures/")

	info, err := svc.UploadFile(context.Background(), strings.NewReader("jpeg"), 4, "me.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "pictures", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.input.ContentType))
	assert.EqualValues(t, 4, aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "jpeg", fake.body)

	key := aws.ToString(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "profile-pictures/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/pictures/"+key, info.URL)
	assert.Equal(t, key, info.Path)
}

func TestS3Storage_UploadFileError(t *testing.T) {
	fake := &fakePutObject{err: errors.New("access denied")}
	svc := newS3StorageService(fake, "pictures", "https://cdn.example.com")

	_, err := svc.UploadFile(context.Background(), strings.NewReader("x"), 1, "a.png", "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3StorageService_RequiresBucket(t *testing.T) {
	_, err := NewS3StorageService(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestS3PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{"aws default", config.S3Config{BucketName: "pictures", Region: "eu-west-1"}, "https://pictures.s3.eu-west-1.amazonaws.com"},
		{"custom endpoint", config.S3Config{BucketName: "pictures", Region: "us-east-1", Endpoint: "http://minio:9000/"}, "http://minio:9000/pictures"},
		{"explicit public url", config.S3Config{BucketName: "pictures", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example.com"}, "https://cdn.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3PublicURL(tt.cfg))
		})
	}
}

func TestNewS3StorageService_AbsolutePictureURLs(t *testing.T) {
	svc, err := NewS3StorageService(context.Background(), config.S3Config{
		BucketName:      "pictures",
		Region:          "eu-west-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pictures.s3.eu-west-1.amazonaws.com", svc.(*S3StorageService).publicURL)
}
