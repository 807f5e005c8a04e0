package adapter

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
)

type fakeUploader struct {
	input    *s3.PutObjectInput
	body     string
	location string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	if input.Body != nil {
		b, _ := io.ReadAll(input.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{Location: f.location}, nil
}

func TestNewImageStorage_DisabledWithoutBucket(t *testing.T) {
	storage, err := NewImageStorage(context.Background(), config.Images{}, logger.Nop())
	require.NoError(t, err)

	_, err = storage.Upload(context.Background(), "k", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
}

func TestNewImageStorage_CustomEndpoint(t *testing.T) {
	cfg := config.Images{
		Bucket:    "products",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000/",
		AccessKey: "minio",
		SecretKey: "minio123",
	}

	storage, err := NewImageStorage(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	s3Storage, ok := storage.(*s3ImageStorage)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:9000", s3Storage.endpoint)
	assert.Equal(t, "http://localhost:9000/products/a/b.png", s3Storage.objectURL("a/b.png"))
}

func TestS3ImageStorage_Upload(t *testing.T) {
	fake := &fakeUploader{location: "https://products.s3.eu-west-1.amazonaws.com/folder/x.png"}
	storage := &s3ImageStorage{uploader: fake, bucket: "products", region: "eu-west-1", logger: logger.Nop()}

	url, err := storage.Upload(context.Background(), "folder/x.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, fake.location, url)
	assert.Equal(t, "products", *fake.input.Bucket)
	assert.Equal(t, "folder/x.png", *fake.input.Key)
	assert.Equal(t, "image/png", *fake.input.ContentType)
	assert.Equal(t, "png-bytes", fake.body)
}

func TestS3ImageStorage_FallbackURL(t *testing.T) {
	storage := &s3ImageStorage{uploader: &fakeUploader{}, bucket: "products", region: "eu-west-1", logger: logger.Nop()}

	url, err := storage.Upload(context.Background(), "folder/x.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://products.s3.eu-west-1.amazonaws.com/folder/x.png", url)
}

func TestS3ImageStorage_UploadError(t *testing.T) {
	uploadErr := errors.New("access denied")
	storage := &s3ImageStorage{uploader: &fakeUploader{err: uploadErr}, bucket: "products", logger: logger.Nop()}

	_, err := storage.Upload(context.Background(), "k", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, uploadErr)
}
