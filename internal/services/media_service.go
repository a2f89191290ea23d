package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var ErrMediaNotConfigured = errors.New("media storage is not configured")

const (
	uploadURLExpiry   = 600 * time.Second
	downloadURLExpiry = 3600 * time.Second
)

// MediaSigner issues time-limited presigned URLs against object storage.
type MediaSigner interface {
	PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ImageUploader pushes an image to the hosted image service and returns a
// ready-to-use secure URL.
type ImageUploader interface {
	Configured() bool
	Upload(ctx context.Context, fileName string, content io.Reader) (string, error)
}

// SignedUpload is the contract of the sign-url gateway: a presigned PUT URL
// and the opaque key the object will live under.
type SignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// MediaService routes media to one of two non-interchangeable paths: images
// go to the hosted image service and come back as fully-qualified URLs,
// everything else gets a presigned upload against object storage and is
// referenced by key until resolved.
type MediaService struct {
	signer     MediaSigner
	images     ImageUploader
	publicBase string
	now        func() time.Time
}

func NewMediaService(signer MediaSigner, images ImageUploader, publicBase string) *MediaService {
	return &MediaService{
		signer:     signer,
		images:     images,
		publicBase: strings.TrimRight(publicBase, "/"),
		now:        time.Now,
	}
}

// Configured reports whether the object-storage signer is usable. Missing
// credentials surface as a fixed 500 at the gateway, never a retry.
func (s *MediaService) Configured() bool {
	return s.signer != nil
}

// ObjectKey builds the storage key for a large-media upload.
func (s *MediaService) ObjectKey(fileName string) string {
	return fmt.Sprintf("videos/%d-%s", s.now().UnixMilli(), fileName)
}

// SignUpload issues a presigned PUT for the file, valid for 10 minutes.
func (s *MediaService) SignUpload(ctx context.Context, fileName, fileType string) (*SignedUpload, error) {
	if s.signer == nil {
		return nil, ErrMediaNotConfigured
	}

	key := s.ObjectKey(fileName)
	uploadURL, err := s.signer.PresignUpload(ctx, key, uploadURLExpiry)
	if err != nil {
		return nil, err
	}
	return &SignedUpload{UploadURL: uploadURL, Key: key}, nil
}

// ResolveURL turns a stored media reference into something playable. Image
// references are already full URLs and pass through; object keys resolve
// against the public base domain when one is configured, otherwise via a
// presigned GET valid for an hour.
func (s *MediaService) ResolveURL(ctx context.Context, key string) (string, error) {
	if strings.HasPrefix(key, "http") {
		return key, nil
	}

	if s.publicBase != "" {
		return s.publicBase + "/" + strings.TrimPrefix(key, "/"), nil
	}

	if s.signer == nil {
		return "", ErrMediaNotConfigured
	}
	return s.signer.PresignDownload(ctx, key, downloadURLExpiry)
}

// IsImage sniffs the MIME prefix that decides which upload path a file
// takes.
func IsImage(fileType string) bool {
	return strings.HasPrefix(fileType, "image/")
}

// UploadImage pushes an image through the hosted image service.
func (s *MediaService) UploadImage(ctx context.Context, fileName string, content io.Reader) (string, error) {
	if s.images == nil || !s.images.Configured() {
		return "", ErrMediaNotConfigured
	}
	return s.images.Upload(ctx, fileName, content)
}
