package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sahaya/internal/model"
	"sahaya/internal/repository"
	"sahaya/internal/validation"
)

// DefaultAppointmentListLimit is how many appointments the portal shows.
const DefaultAppointmentListLimit = 5

// statusPool is sampled uniformly; the duplicates keep both outcomes equally likely.
var statusPool = [...]model.Status{
	model.StatusAccepted,
	model.StatusPending,
	model.StatusPending,
	model.StatusAccepted,
}

// Picker is the random source used to assign a booking status.
// *rand.Rand from math/rand/v2 satisfies it; the store only calls it while
// holding its lock, so a non-thread-safe source is fine.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// ServiceResolver resolves a catalog service id to its display name.
type ServiceResolver interface {
	ServiceName(id string) (string, bool)
}

// BookingRequest carries the raw form fields. Date is 2006-01-02, Time is 15:04.
type BookingRequest struct {
	ServiceID string `json:"serviceId" validate:"required"`
	Date      string `json:"date" validate:"required,date"`
	Time      string `json:"time" validate:"required,clock"`
}

// AppointmentService defines the appointment booking use cases.
type AppointmentService interface {
	Book(ctx context.Context, req BookingRequest) (*model.Appointment, error)

	// List returns the newest limit appointments; limit <= 0 returns all.
	List(limit int) []model.Appointment

	Find(id string) (model.Appointment, bool)
}

// AppointmentStore owns the appointment collection, newest first, mirrored
// under repository.KeyAppointments.
type AppointmentStore struct {
	mu    sync.Mutex
	items []model.Appointment

	kv       repository.KeyValueRepository
	services ServiceResolver
	picker   Picker
	val      *validation.Validator
	log      *zap.Logger
	now      func() time.Time
}

var _ AppointmentService = (*AppointmentStore)(nil)

// NewAppointmentStore constructs an empty store. A nil picker uses the
// package-level math/rand/v2 source.
func NewAppointmentStore(kv repository.KeyValueRepository, services ServiceResolver, picker Picker, log *zap.Logger) *AppointmentStore {
	if picker == nil {
		picker = globalPicker{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AppointmentStore{
		items:    []model.Appointment{},
		kv:       kv,
		services: services,
		picker:   picker,
		val:      validation.New(),
		log:      log,
		now:      time.Now,
	}
}

// Restore loads the persisted collection with the same degrade-to-empty
// contract as VaultStore.Restore.
func (s *AppointmentStore) Restore(ctx context.Context) error {
	var stored []model.Appointment
	if err := restoreValue(ctx, s.kv, repository.KeyAppointments, s.log, &stored); err != nil {
		return err
	}
	items := make([]model.Appointment, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, a := range stored {
		if a.ID == "" {
			s.log.Warn("dropping persisted appointment without id")
			continue
		}
		if _, dup := seen[a.ID]; dup {
			s.log.Warn("dropping duplicate persisted appointment", zap.String("appointment_id", a.ID))
			continue
		}
		seen[a.ID] = struct{}{}
		items = append(items, a)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.log.Info("appointments restored", zap.Int("appointments", len(items)))
	return nil
}

func (s *AppointmentStore) Book(ctx context.Context, req BookingRequest) (*model.Appointment, error) {
	req = BookingRequest{
		ServiceID: strings.TrimSpace(req.ServiceID),
		Date:      strings.TrimSpace(req.Date),
		Time:      strings.TrimSpace(req.Time),
	}
	serviceID, date, clock := req.ServiceID, req.Date, req.Time

	ctx, span := tracer.Start(ctx, "appointment.book", trace.WithAttributes(attribute.String("service.id", serviceID)))
	defer span.End()

	if err := s.val.Struct(req); err != nil {
		// A missing field is reported before a malformed one.
		for _, fe := range validation.Details(err) {
			if fe.Rule == "required" {
				return nil, ErrMissingFields
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	name := serviceID
	if s.services != nil {
		if resolved, ok := s.services.ServiceName(serviceID); ok {
			name = resolved
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	status := statusPool[s.picker.IntN(len(statusPool))]
	now := s.now()
	appt := model.Appointment{
		ID:          s.nextID(now),
		ServiceName: name,
		Date:        date,
		Time:        clock,
		Status:      status,
		CreatedAt:   now.UTC(),
	}

	next := make([]model.Appointment, 0, len(s.items)+1)
	next = append(next, appt)
	next = append(next, s.items...)

	if err := persistValue(ctx, s.kv, repository.KeyAppointments, next); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.items = next

	s.log.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("service", appt.ServiceName),
		zap.String("status", string(appt.Status)),
	)
	out := appt
	return &out, nil
}

func (s *AppointmentStore) List(limit int) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.Appointment, n)
	copy(out, s.items[:n])
	return out
}

func (s *AppointmentStore) Find(id string) (model.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if strings.EqualFold(a.ID, id) {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// nextID builds "APT" plus the last six digits of the millisecond clock,
// stepping forward while the id is taken. Caller holds s.mu.
func (s *AppointmentStore) nextID(now time.Time) string {
	n := now.UnixMilli() % 1_000_000
	for range 1_000_000 {
		id := fmt.Sprintf("APT%06d", n)
		if !s.hasID(id) {
			return id
		}
		n = (n + 1) % 1_000_000
	}
	// A million live appointments exhausts the six-digit space.
	return fmt.Sprintf("APT%d", now.UnixNano())
}

func (s *AppointmentStore) hasID(id string) bool {
	for _, a := range s.items {
		if a.ID == id {
			return true
		}
	}
	return false
}
