package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/config"
)

func TestPublicBase(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{"explicit public url", config.StorageConfig{PublicURL: "https://cdn.example.com/assets/", Endpoint: "minio:9000", Bucket: "media"}, "https://cdn.example.com/assets"},
		{"plain endpoint", config.StorageConfig{Endpoint: "localhost:9000", Bucket: "media"}, "http://localhost:9000/media"},
		{"ssl endpoint", config.StorageConfig{Endpoint: "store.example.com", Bucket: "media", UseSSL: true}, "https://store.example.com/media"},
		{"endpoint with scheme", config.StorageConfig{Endpoint: "http://minio:9000/", Bucket: "media"}, "http://minio:9000/media"},
		{"aws default", config.StorageConfig{Bucket: "press", Region: "eu-west-1"}, "https://press.s3.eu-west-1.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBase(tt.cfg))
		})
	}
}

func TestJoinURL_EscapesSegments(t *testing.T) {
	got := joinURL("http://cdn", "raw/2025/03/my file.pdf")
	assert.Equal(t, "http://cdn/raw/2025/03/my%20file.pdf", got)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestNewMinIO_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewMinIO(ctx, config.StorageConfig{})
	assert.ErrorContains(t, err, "endpoint is required")

	_, err = NewMinIO(ctx, config.StorageConfig{Endpoint: "localhost:9000"})
	assert.ErrorContains(t, err, "credentials are required")

	_, err = NewMinIO(ctx, config.StorageConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.ErrorContains(t, err, "bucket is required")
}

type fakeS3 struct {
	put    *s3.PutObjectInput
	delErr error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{ETag: aws.String(`"abc"`)}, nil
}

func (f *fakeS3) DeleteObject(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return &s3.DeleteObjectOutput{}, f.delErr
}

func TestS3Storage_Put(t *testing.T) {
	fake := &fakeS3{}
	s := &s3Storage{client: fake, bucket: "press", base: "https://cdn"}

	info, err := s.Put(context.Background(), "raw/2025/03/x.pdf", strings.NewReader("%PDF"), PutObjectOptions{
		Size:               4,
		ContentType:        "application/pdf",
		ContentDisposition: `inline; filename="essay.pdf"`,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/raw/2025/03/x.pdf", info.URL)
	assert.Equal(t, `"abc"`, info.ETag)
	assert.Equal(t, int64(4), aws.ToInt64(fake.put.ContentLength))
	assert.Equal(t, `inline; filename="essay.pdf"`, aws.ToString(fake.put.ContentDisposition))
	assert.Equal(t, "press", aws.ToString(fake.put.Bucket))
}

func TestS3Storage_Delete(t *testing.T) {
	ctx := context.Background()

	s := &s3Storage{client: &fakeS3{delErr: &types.NoSuchKey{}}, bucket: "press"}
	assert.NoError(t, s.Delete(ctx, "image/a.png"))

	boom := errors.New("access denied")
	s = &s3Storage{client: &fakeS3{delErr: boom}, bucket: "press"}
	assert.ErrorIs(t, s.Delete(ctx, "image/a.png"), boom)
}

func TestNewS3_LoadConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	_, err := NewS3(context.Background(), config.StorageConfig{Driver: "s3", Bucket: "press"})
	assert.ErrorContains(t, err, "load aws config: no profile")
}

func TestNewS3_CustomEndpoint(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	defer func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	var got s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&got)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	st, err := NewS3(context.Background(), config.StorageConfig{Endpoint: "minio:9000", Bucket: "press"})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", aws.ToString(got.BaseEndpoint))
	assert.True(t, got.UsePathStyle)
	assert.Equal(t, "http://minio:9000/press/image/a.png", st.PublicURL("image/a.png"))
}
