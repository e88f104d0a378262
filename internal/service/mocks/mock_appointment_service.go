package mocks

import (
	"context"

	"sahaya/internal/model"
	"sahaya/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAppointmentService struct {
	mock.Mock
}

var _ service.AppointmentService = (*MockAppointmentService)(nil)

func (m *MockAppointmentService) Book(ctx context.Context, req service.BookingRequest) (*model.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) List(limit int) []model.Appointment {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Appointment)
}

func (m *MockAppointmentService) Find(id string) (model.Appointment, bool) {
	args := m.Called(id)
	return args.Get(0).(model.Appointment), args.Bool(1)
}
