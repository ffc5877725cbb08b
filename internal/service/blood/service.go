package blood

import (
	"context"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

const (
	MsgRequiredFields = "Please fill all required fields."
	MsgDonated        = "Thank you for donating blood!"
	MsgDatabaseError  = "Database error"
)

type Service struct {
	repo     repository.BloodRepository
	events   *event.Emitter
	validate validator.Validator
}

func NewService(repo repository.BloodRepository, events *event.Emitter) *Service {
	if events == nil {
		events = event.NewEmitter(nil, nil)
	}
	return &Service{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// Donate records a donor. Omitted, empty or zero age and location are stored
// as NULL.
func (s *Service) Donate(ctx context.Context, req *model.DonateBloodRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return errors.BadRequest(MsgRequiredFields, err)
	}

	donor := req.ToDonor()
	if err := s.repo.CreateDonor(ctx, donor); err != nil {
		return errors.Internal(MsgDatabaseError, err)
	}

	s.events.Emit(ctx, messaging.EventBloodDonated, donor)
	return nil
}

func (s *Service) ListAvailability(ctx context.Context) ([]model.Record, error) {
	records, err := s.repo.ListAvailability(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return records, nil
}

func (s *Service) ListRecords(ctx context.Context) ([]model.Record, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return records, nil
}
