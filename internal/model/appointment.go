package model

import "time"

// Status is the shared badge vocabulary for appointments and applications.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is part of the badge vocabulary.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Appointment is a booked visit. Status is fixed at creation.
type Appointment struct {
	ID          string    `json:"id"`
	ServiceName string    `json:"serviceName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
