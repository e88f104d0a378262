package handler

import (
	"github.com/gofiber/fiber/v2"

	"sahaya/internal/model"
	"sahaya/internal/service"
)

// GetProfile returns the stored profile; every field is empty until saved.
//
// @Summary  Get profile
// @Tags     profile
// @Produce  json
// @Success  200 {object} model.Profile
// @Router   /profile [get]
func GetProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Profile())
	}
}

// UpdateProfile replaces the profile.
//
// @Summary  Update profile
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    body body     model.Profile true "Profile"
// @Success  200  {object} model.Profile
// @Failure  400  {object} errorPayload
// @Failure  503  {object} errorPayload
// @Router   /profile [put]
func UpdateProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p model.Profile
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		saved, err := svc.SaveProfile(c.UserContext(), p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(saved)
	}
}

// GetSignature returns the stored signature image as a data URI.
//
// @Summary  Get signature
// @Tags     profile
// @Produce  json
// @Success  200 {object} model.Signature
// @Failure  404 {object} errorPayload
// @Router   /profile/signature [get]
func GetSignature(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sig, ok := svc.Signature()
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no signature saved")
		}
		return c.JSON(sig)
	}
}

// UpdateSignature replaces the signature image.
//
// @Summary  Upload signature
// @Tags     profile
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "Signature image"
// @Success  200  {object} model.Signature
// @Failure  400  {object} errorPayload
// @Failure  413  {object} errorPayload
// @Failure  415  {object} errorPayload
// @Router   /profile/signature [put]
func UpdateSignature(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cand, f, err := formFile(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		defer f.Close()

		sig, err := svc.SaveSignature(c.UserContext(), cand.MimeType, cand.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sig)
	}
}

// ListCommonDocuments reports which identity documents are in the vault.
//
// @Summary  Common identity documents
// @Tags     profile
// @Produce  json
// @Success  200 {array} service.CommonDocumentStatus
// @Router   /profile/documents [get]
func ListCommonDocuments(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.CommonDocuments())
	}
}

// UploadCommonDocument runs the verification step and files the document
// in the vault under a standard name.
//
// @Summary  Upload common document
// @Tags     profile
// @Accept   multipart/form-data
// @Produce  json
// @Param    type path     string true "Document type, e.g. aadhar"
// @Param    file formData file   true "Document"
// @Success  201  {object} model.Document
// @Failure  404  {object} errorPayload
// @Failure  409  {object} errorPayload
// @Failure  415  {object} errorPayload
// @Router   /profile/documents/{type} [post]
func UploadCommonDocument(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cand, f, err := formFile(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		defer f.Close()

		doc, err := svc.UploadCommonDocument(c.UserContext(), c.Params("type"), cand)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}
