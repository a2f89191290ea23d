package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/edulaunch/edumarket/internal/services"
)

var mediaService *services.MediaService

func InitMediaHandlers(media *services.MediaService) {
	mediaService = media
}

// SignURLHandler is the media upload gateway. POST signs a time-limited
// upload URL for large media, GET resolves a stored key to a readable URL.
// Registered with All so unsupported methods answer 405 instead of 404.
func SignURLHandler(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodOptions:
		return c.SendStatus(fiber.StatusOK)

	case fiber.MethodPost:
		var request struct {
			FileName string `json:"fileName"`
			FileType string `json:"fileType"`
		}
		if err := c.BodyParser(&request); err != nil || request.FileName == "" || request.FileType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing fileName or fileType"})
		}

		signed, err := mediaService.SignUpload(c.Context(), request.FileName, request.FileType)
		if err != nil {
			return signURLError(c, err)
		}
		return c.JSON(signed)

	case fiber.MethodGet:
		key := c.Query("key")
		if key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file key"})
		}

		url, err := mediaService.ResolveURL(c.Context(), key)
		if err != nil {
			return signURLError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})

	default:
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
	}
}

func signURLError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrMediaNotConfigured) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server misconfiguration: Missing Keys"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// UploadMediaHandler routes an uploaded file by MIME type: images go to the
// hosted image service and return a ready-to-use URL, everything else gets a
// presigned upload and an opaque key for the client to PUT against.
func UploadMediaHandler(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to retrieve file"})
	}
	fileType := fileHeader.Header.Get("Content-Type")

	if services.IsImage(fileType) {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open file"})
		}
		defer file.Close()

		url, err := mediaService.UploadImage(c.Context(), fileHeader.Filename, file)
		if err != nil {
			return signURLError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}

	signed, err := mediaService.SignUpload(c.Context(), fileHeader.Filename, fileType)
	if err != nil {
		return signURLError(c, err)
	}
	return c.JSON(signed)
}
