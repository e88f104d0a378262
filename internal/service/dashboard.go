package service

import "sahaya/internal/model"

// DashboardCounts is the summary shown on the portal home page.
type DashboardCounts struct {
	Documents            int `json:"documents"`
	Appointments         int `json:"appointments"`
	PendingApplications  int `json:"pendingApplications"`
	ApprovedApplications int `json:"approvedApplications"`
}

type DashboardService interface {
	Counts() DashboardCounts
}

// Dashboard reads from the other stores; it owns no state.
type Dashboard struct {
	vault        VaultService
	appointments AppointmentService
	tracker      TrackerService
}

var _ DashboardService = (*Dashboard)(nil)

func NewDashboard(vault VaultService, appointments AppointmentService, tracker TrackerService) *Dashboard {
	return &Dashboard{vault: vault, appointments: appointments, tracker: tracker}
}

func (d *Dashboard) Counts() DashboardCounts {
	summary := d.tracker.Summary()
	return DashboardCounts{
		Documents:            len(d.vault.List()),
		Appointments:         len(d.appointments.List(0)),
		PendingApplications:  summary[model.StatusPending],
		ApprovedApplications: summary[model.StatusApproved],
	}
}
