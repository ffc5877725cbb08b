package appointment

import (
	"context"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

// Caller-facing messages
const (
	MsgAllFieldsRequired = "All fields are required!"
	MsgSlotFull          = "This time slot is full! Please choose another."
	MsgInsertFailed      = "Database insert failed!"
	MsgBooked            = "Appointment booked successfully!"

	MsgPhoneRequired   = "Phone number required."
	MsgNoMatchForPhone = "No appointment found for that phone number."
	MsgCancelFailed    = "Database error occurred."
	MsgCancelled       = "Appointment cancelled successfully!"

	MsgDatabaseError = "Database error"
)

const DefaultSlotCapacity = 3

type Config struct {
	SlotCapacity   int
	SerializeSlots bool
}

type Service struct {
	repo     repository.AppointmentRepository
	events   *event.Emitter
	metrics  *metrics.Metrics
	validate validator.Validator
	cfg      Config
}

func NewService(repo repository.AppointmentRepository, events *event.Emitter, m *metrics.Metrics, cfg Config) *Service {
	if cfg.SlotCapacity <= 0 {
		cfg.SlotCapacity = DefaultSlotCapacity
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if events == nil {
		events = event.NewEmitter(nil, m)
	}
	return &Service{
		repo:     repo,
		events:   events,
		metrics:  m,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Book admits the appointment if its slot holds fewer than SlotCapacity
// bookings. Unless SerializeSlots is set, the count and the insert are two
// independent statements and concurrent bookings may overfill a slot.
func (s *Service) Book(ctx context.Context, req *model.BookAppointmentRequest) error {
	if err := s.validate.Validate(req); err != nil {
		s.metrics.Bookings.WithLabelValues(metrics.BookingInvalid).Inc()
		return errors.BadRequest(MsgAllFieldsRequired, err)
	}

	appointment := req.ToAppointment()

	booked, err := s.book(ctx, req.Slot(), appointment)
	if err != nil {
		s.metrics.Bookings.WithLabelValues(metrics.BookingError).Inc()
		return errors.Internal(MsgInsertFailed, err)
	}
	if !booked {
		s.metrics.Bookings.WithLabelValues(metrics.BookingSlotFull).Inc()
		return errors.NewSlotFull(MsgSlotFull)
	}

	s.metrics.Bookings.WithLabelValues(metrics.BookingAccepted).Inc()
	s.events.Emit(ctx, messaging.EventAppointmentBooked, appointment)
	return nil
}

func (s *Service) book(ctx context.Context, slot model.Slot, appointment *model.Appointment) (bool, error) {
	if s.cfg.SerializeSlots {
		return s.repo.CreateIfSlotAvailable(ctx, appointment, s.cfg.SlotCapacity)
	}

	count, err := s.repo.CountBySlot(ctx, slot)
	if err != nil {
		return false, err
	}
	if count >= s.cfg.SlotCapacity {
		return false, nil
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts an appointment without a time, so no slot capacity applies.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return errors.BadRequest(MsgAllFieldsRequired, err)
	}

	appointment := req.ToAppointment()
	if err := s.repo.Create(ctx, appointment); err != nil {
		return errors.Internal(MsgInsertFailed, err)
	}

	s.events.Emit(ctx, messaging.EventAppointmentBooked, appointment)
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return appointments, nil
}

// Cancel deletes by id and succeeds whether or not the row existed.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.metrics.Cancellations.WithLabelValues(metrics.CancelByID, metrics.CancelError).Inc()
		return errors.Internal(MsgCancelFailed, err)
	}

	s.metrics.Cancellations.WithLabelValues(metrics.CancelByID, metrics.CancelDeleted).Inc()
	s.events.Emit(ctx, messaging.EventAppointmentCancelled, map[string]interface{}{"id": id})
	return nil
}

// CancelByPhone deletes one appointment booked with the phone. Phones are not
// unique; which of several matches is removed is up to the datastore.
func (s *Service) CancelByPhone(ctx context.Context, req *model.CancelAppointmentRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return errors.BadRequest(MsgPhoneRequired, err)
	}

	removed, err := s.repo.DeleteOneByPhone(ctx, string(req.Phone))
	if err != nil {
		s.metrics.Cancellations.WithLabelValues(metrics.CancelByPhone, metrics.CancelError).Inc()
		return errors.Internal(MsgCancelFailed, err)
	}
	if removed == 0 {
		s.metrics.Cancellations.WithLabelValues(metrics.CancelByPhone, metrics.CancelNotFound).Inc()
		return errors.NotFound(MsgNoMatchForPhone, nil)
	}

	s.metrics.Cancellations.WithLabelValues(metrics.CancelByPhone, metrics.CancelDeleted).Inc()
	s.events.Emit(ctx, messaging.EventAppointmentCancelled, map[string]interface{}{"phone": string(req.Phone)})
	return nil
}
