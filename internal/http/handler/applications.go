package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"sahaya/internal/service"
)

// TrackApplication resolves an application id, ignoring case and padding.
//
// @Summary  Track application
// @Tags     applications
// @Produce  json
// @Param    id  path     string true "Application ID, e.g. APP001"
// @Success  200 {object} service.ApplicationView
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /applications/{id} [get]
func TrackApplication(svc service.TrackerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := url.PathUnescape(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		view, err := svc.Track(id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}
