package handler

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"sahaya/internal/service"
)

// ListDocuments returns the vault in upload order.
//
// @Summary  List vault documents
// @Tags     documents
// @Produce  json
// @Success  200 {array} model.Document
// @Router   /documents [get]
func ListDocuments(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.List())
	}
}

// UploadDocument stores a PDF, JPG or PNG of at most the configured size.
//
// @Summary  Upload document
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "Document"
// @Success  201 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Failure  415 {object} errorPayload
// @Failure  503 {object} errorPayload
// @Router   /documents [post]
func UploadDocument(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cand, f, err := formFile(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		defer f.Close()

		doc, err := svc.Add(c.UserContext(), cand)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns document metadata.
//
// @Summary  Get document
// @Tags     documents
// @Produce  json
// @Param    id  path     string true "Document ID"
// @Success  200 {object} model.Document
// @Failure  404 {object} errorPayload
// @Router   /documents/{id} [get]
func GetDocument(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok := svc.Find(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document. Unknown ids succeed as well.
//
// @Summary  Delete document
// @Tags     documents
// @Param    id  path string true "Document ID"
// @Success  204
// @Failure  503 {object} errorPayload
// @Router   /documents/{id} [delete]
func DeleteDocument(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Remove(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentContent streams the stored bytes for preview or download.
//
// @Summary  Document content
// @Tags     documents
// @Produce  application/pdf,image/jpeg,image/png
// @Param    id       path  string true  "Document ID"
// @Param    download query bool   false "Force attachment disposition"
// @Success  200 {file} binary
// @Failure  404 {object} errorPayload
// @Router   /documents/{id}/content [get]
func DocumentContent(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		doc, ok := svc.Find(id)
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
		}
		rc, info, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		disposition := "inline"
		if c.QueryBool("download") {
			disposition = "attachment"
		}
		c.Set(fiber.HeaderContentType, info.ContentType)
		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType(disposition, map[string]string{"filename": doc.Name}))

		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}

// DocumentURL returns a time-limited link to the document bytes.
//
// @Summary  Presigned document URL
// @Tags     documents
// @Produce  json
// @Param    id  path     string true "Document ID"
// @Success  200 {object} map[string]string
// @Failure  404 {object} errorPayload
// @Router   /documents/{id}/url [get]
func DocumentURL(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.PresignURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}
