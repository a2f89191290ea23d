package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockSigner) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockImageUploader) Upload(ctx context.Context, fileName string, content io.Reader) (string, error) {
	args := m.Called(ctx, fileName, content)
	return args.String(0), args.Error(1)
}

func TestObjectKeyConvention(t *testing.T) {
	svc := NewMediaService(new(MockSigner), nil, "")
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	assert.Equal(t, "videos/1700000000000-lesson.mp4", svc.ObjectKey("lesson.mp4"))
}

func TestSignUpload_ExpiryAndKey(t *testing.T) {
	signer := new(MockSigner)
	svc := NewMediaService(signer, nil, "")
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	signer.On("PresignUpload", mock.Anything, "videos/1700000000000-lesson.mp4", 600*time.Second).
		Return("https://storage.example.com/put", nil)

	signed, err := svc.SignUpload(context.Background(), "lesson.mp4", "video/mp4")

	assert.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/put", signed.UploadURL)
	assert.Equal(t, "videos/1700000000000-lesson.mp4", signed.Key)
}

func TestSignUpload_MissingConfiguration(t *testing.T) {
	svc := NewMediaService(nil, nil, "")

	_, err := svc.SignUpload(context.Background(), "lesson.mp4", "video/mp4")

	assert.ErrorIs(t, err, ErrMediaNotConfigured)
}

func TestResolveURL(t *testing.T) {
	t.Run("full URLs pass through", func(t *testing.T) {
		svc := NewMediaService(nil, nil, "https://cdn.example.com")

		url, err := svc.ResolveURL(context.Background(), "https://images.example.com/x.png")

		assert.NoError(t, err)
		assert.Equal(t, "https://images.example.com/x.png", url)
	})

	t.Run("keys resolve against the public base", func(t *testing.T) {
		svc := NewMediaService(nil, nil, "https://cdn.example.com/")

		url, err := svc.ResolveURL(context.Background(), "/videos/1-lesson.mp4")

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/videos/1-lesson.mp4", url)
	})

	t.Run("presigned fallback without a public base", func(t *testing.T) {
		signer := new(MockSigner)
		svc := NewMediaService(signer, nil, "")

		signer.On("PresignDownload", mock.Anything, "videos/1-lesson.mp4", 3600*time.Second).
			Return("https://storage.example.com/get", nil)

		url, err := svc.ResolveURL(context.Background(), "videos/1-lesson.mp4")

		assert.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/get", url)
	})
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("video/mp4"))
	assert.False(t, IsImage("application/pdf"))
}

func TestUploadImage_NotConfigured(t *testing.T) {
	images := new(MockImageUploader)
	images.On("Configured").Return(false)
	svc := NewMediaService(nil, images, "")

	_, err := svc.UploadImage(context.Background(), "x.png", nil)

	assert.ErrorIs(t, err, ErrMediaNotConfigured)
}
