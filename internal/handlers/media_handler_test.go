package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/edulaunch/edumarket/internal/services"
)

type stubSigner struct{}

func (stubSigner) PresignUpload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example.com/put/" + key, nil
}

func (stubSigner) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example.com/get/" + key, nil
}

func newSignURLApp(media *services.MediaService) *fiber.App {
	InitMediaHandlers(media)
	app := fiber.New()
	app.All("/api/sign-url", SignURLHandler)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSignURL_Post(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(stubSigner{}, nil, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/sign-url",
		strings.NewReader(`{"fileName":"lesson.mp4","fileType":"video/mp4"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["uploadUrl"], "https://storage.example.com/put/videos/")
	assert.True(t, strings.HasPrefix(body["key"], "videos/"))
	assert.True(t, strings.HasSuffix(body["key"], "-lesson.mp4"))
}

func TestSignURL_PostMissingFields(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(stubSigner{}, nil, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/sign-url",
		strings.NewReader(`{"fileName":"lesson.mp4"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignURL_Get(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(stubSigner{}, nil, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/sign-url?key=videos/1-lesson.mp4", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://storage.example.com/get/videos/1-lesson.mp4", decodeBody(t, resp)["url"])
}

func TestSignURL_GetMissingKey(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(stubSigner{}, nil, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/sign-url", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignURL_Options(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(stubSigner{}, nil, ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodOptions, "/api/sign-url", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignURL_MethodNotAllowed(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(stubSigner{}, nil, ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/sign-url", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// Without storage credentials the gateway answers every signing request
// with the fixed misconfiguration error.
func TestSignURL_MissingKeys(t *testing.T) {
	app := newSignURLApp(services.NewMediaService(nil, nil, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/sign-url",
		strings.NewReader(`{"fileName":"lesson.mp4","fileType":"video/mp4"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Server misconfiguration: Missing Keys", decodeBody(t, resp)["error"])
}
