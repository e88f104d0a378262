package handler

import (
	"github.com/gofiber/fiber/v2"

	"sahaya/internal/service"
)

// ListServices returns every government service in the catalog.
//
// @Summary  List services
// @Tags     services
// @Produce  json
// @Success  200 {array} model.Service
// @Router   /services [get]
func ListServices(cat ServiceCatalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(cat.Services())
	}
}

// GetService returns one service with its required documents.
//
// @Summary  Get service
// @Tags     services
// @Produce  json
// @Param    id  path     string true "Service ID"
// @Success  200 {object} model.Service
// @Failure  404 {object} errorPayload
// @Router   /services/{id} [get]
func GetService(cat ServiceCatalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc, ok := cat.Service(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "service not found")
		}
		return c.JSON(svc)
	}
}

// requiredDocumentCheck is the outcome of checking a file against one of a
// service's required documents.
type requiredDocumentCheck struct {
	ServiceID string `json:"serviceId"`
	Document  string `json:"document"`
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	Verified  bool   `json:"verified"`
}

// VerifyRequiredDocument checks a file for one required document of a
// service using the vault's upload rules. Nothing is stored.
//
// @Summary  Verify required document
// @Tags     services
// @Accept   multipart/form-data
// @Produce  json
// @Param    id    path     string true "Service ID"
// @Param    index path     int    true "Required document index"
// @Param    file  formData file   true "Document"
// @Success  200 {object} requiredDocumentCheck
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Failure  415 {object} errorPayload
// @Router   /services/{id}/documents/{index}/verify [post]
func VerifyRequiredDocument(cat ServiceCatalog, vault service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc, ok := cat.Service(c.Params("id"))
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "service not found")
		}
		idx, err := c.ParamsInt("index")
		if err != nil || idx < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid document index")
		}
		if idx >= len(svc.RequiredDocuments) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "required document not found")
		}

		cand, f, err := formFile(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		defer f.Close()

		mt, err := vault.Check(cand)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(requiredDocumentCheck{
			ServiceID: svc.ID,
			Document:  svc.RequiredDocuments[idx],
			FileName:  cand.Name,
			MimeType:  mt,
			SizeBytes: cand.Size,
			Verified:  true,
		})
	}
}
