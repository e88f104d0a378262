package handler

import (
	"github.com/gofiber/fiber/v2"

	"sahaya/internal/model"
	"sahaya/internal/service"
)

// ServiceCatalog is the read-only service reference data.
type ServiceCatalog interface {
	Services() []model.Service
	Service(id string) (model.Service, bool)
}

// Deps bundles what the HTTP layer needs. Everything is constructed in main.
type Deps struct {
	Store        Pinger
	Catalog      ServiceCatalog
	Vault        service.VaultService
	Appointments service.AppointmentService
	Tracker      service.TrackerService
	Profile      service.ProfileService
	Dashboard    service.DashboardService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the services.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Store))
	app.Get("/healthz", LivenessProbe())

	app.Get("/services", ListServices(d.Catalog))
	app.Get("/services/:id", GetService(d.Catalog))
	app.Post("/services/:id/documents/:index/verify", VerifyRequiredDocument(d.Catalog, d.Vault))

	app.Get("/documents", ListDocuments(d.Vault))
	app.Post("/documents", UploadDocument(d.Vault))
	app.Get("/documents/:id", GetDocument(d.Vault))
	app.Delete("/documents/:id", DeleteDocument(d.Vault))
	app.Get("/documents/:id/content", DocumentContent(d.Vault))
	app.Get("/documents/:id/url", DocumentURL(d.Vault))

	app.Get("/appointments", ListAppointments(d.Appointments))
	app.Post("/appointments", BookAppointment(d.Appointments))

	app.Get("/applications/:id", TrackApplication(d.Tracker))

	app.Get("/profile", GetProfile(d.Profile))
	app.Put("/profile", UpdateProfile(d.Profile))
	app.Get("/profile/signature", GetSignature(d.Profile))
	app.Put("/profile/signature", UpdateSignature(d.Profile))
	app.Get("/profile/documents", ListCommonDocuments(d.Profile))
	app.Post("/profile/documents/:type", UploadCommonDocument(d.Profile))

	app.Get("/dashboard", GetDashboard(d.Dashboard))
}
