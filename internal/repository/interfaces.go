package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/hospital-api/internal/model"
)

// ErrSlotContention is returned when a serialized booking transaction lost a
// race against a concurrent booking and was rolled back by the database.
var ErrSlotContention = errors.New("slot booking conflicted with a concurrent transaction")

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		CountBySlot(ctx context.Context, slot model.Slot) (int, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		// CreateIfSlotAvailable counts and inserts inside one serializable
		// transaction. It reports false without inserting when the slot is full.
		CreateIfSlotAvailable(ctx context.Context, appointment *model.Appointment, capacity int) (bool, error)
		List(ctx context.Context) ([]*model.Appointment, error)
		Delete(ctx context.Context, id int64) error
		// DeleteOneByPhone removes at most one appointment with the given phone
		// and returns the number of rows removed.
		DeleteOneByPhone(ctx context.Context, phone string) (int64, error)
	}

	BloodRepository interface {
		CreateDonor(ctx context.Context, donor *model.BloodDonor) error
		ListAvailability(ctx context.Context) ([]model.Record, error)
		ListRecords(ctx context.Context) ([]model.Record, error)
	}

	OrganRepository interface {
		CreateRequest(ctx context.Context, request *model.OrganRequest) error
		ListRequests(ctx context.Context) ([]*model.OrganRequest, error)
		ListAvailability(ctx context.Context) ([]model.Record, error)
	}

	DirectoryRepository interface {
		ListHospitals(ctx context.Context) ([]model.Record, error)
		ListDoctors(ctx context.Context) ([]model.Record, error)
	}
)
