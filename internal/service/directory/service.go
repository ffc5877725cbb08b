package directory

import (
	"context"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
)

const MsgDatabaseError = "Database error"

// Service serves the hospital and doctor reference tables.
type Service struct {
	repo repository.DirectoryRepository
}

func NewService(repo repository.DirectoryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListHospitals(ctx context.Context) ([]model.Record, error) {
	records, err := s.repo.ListHospitals(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return records, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]model.Record, error) {
	records, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, errors.Internal(MsgDatabaseError, err)
	}
	return records, nil
}
