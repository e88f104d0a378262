package handler

import (
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"sahaya/internal/service"
)

// formFile opens the multipart "file" field. The caller closes the file.
// When the part carries no Content-Type the extension decides.
func formFile(c *fiber.Ctx) (service.UploadCandidate, multipart.File, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.UploadCandidate{}, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return service.UploadCandidate{}, nil, err
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(fh.Filename)); byExt != "" {
			ct = byExt
		}
	}

	return service.UploadCandidate{
		Name:     fh.Filename,
		MimeType: ct,
		Size:     fh.Size,
		Content:  f,
	}, f, nil
}
