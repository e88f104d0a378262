package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sahaya/internal/service"
)

// ListAppointments returns the newest appointments, 5 unless limit says otherwise.
// limit=0 returns all of them.
//
// @Summary  List appointments
// @Tags     appointments
// @Produce  json
// @Param    limit query    int false "Max entries" default(5)
// @Success  200   {array}  model.Appointment
// @Failure  400   {object} errorPayload
// @Router   /appointments [get]
func ListAppointments(svc service.AppointmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultAppointmentListLimit)))
		if err != nil || limit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		return c.JSON(svc.List(limit))
	}
}

// BookAppointment books a visit; the status is assigned by the server.
//
// @Summary  Book appointment
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Param    body body     service.BookingRequest true "Booking"
// @Success  201  {object} model.Appointment
// @Failure  400  {object} errorPayload
// @Failure  503  {object} errorPayload
// @Router   /appointments [post]
func BookAppointment(svc service.AppointmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.BookingRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		appt, err := svc.Book(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(appt)
	}
}
