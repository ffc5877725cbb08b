package organ

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
	MsgRequested      = "Organ request added"
	MsgDatabaseError  = "Database error"
)

type Service struct {
	repo     repository.OrganRepository
	events   *event.Emitter
	validate validator.Validator
}

func NewService(repo repository.OrganRepository, events *event.Emitter) *Service {
	if events == nil {
		events = event.NewEmitter(nil, nil)
	}
	return &Service{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

func (s *Service) Request(ctx context.Context, req *model.CreateOrganRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return errors.BadRequest(MsgRequiredFields, err)
	}

	request := req.ToOrganRequest()
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return errors.Internal(MsgDatabaseError, err)
	}

	s.events.Emit(ctx, messaging.EventOrganRequested, request)
	return nil
}

func (s *Service) ListRequests(ctx context.Context) ([]*model.OrganRequest, error) {
	requests, err := s.repo.ListRequests(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return requests, nil
}

func (s *Service) ListAvailability(ctx context.Context) ([]model.Record, error) {
	records, err := s.repo.ListAvailability(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return records, nil
}
