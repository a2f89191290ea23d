package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ImageHost uploads small images to the hosted image-transformation service.
// Unlike the object-storage path, the response carries a fully-qualified
// secure URL that needs no later resolution.
type ImageHost struct {
	uploadURL string
	preset    string
	client    *http.Client
}

func NewImageHost(uploadURL, preset string) *ImageHost {
	return &ImageHost{
		uploadURL: uploadURL,
		preset:    preset,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *ImageHost) Configured() bool {
	return h.uploadURL != "" && h.preset != ""
}

// Upload posts the image as an unsigned multipart upload and returns the
// hosted secure URL.
func (h *ImageHost) Upload(ctx context.Context, fileName string, content io.Reader) (string, error) {
	if !h.Configured() {
		return "", errors.New("image host is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := writer.WriteField("upload_preset", h.preset); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("image host response missing secure_url")
	}
	return result.SecureURL, nil
}
