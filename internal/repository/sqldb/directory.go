package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const (
	listHospitalsQuery = `SELECT * FROM hospitals`
	listDoctorsQuery   = `SELECT * FROM doctors`
)

type directoryRepository struct {
	BaseRepository
}

func NewDirectoryRepository(db *sqlx.DB) repository.DirectoryRepository {
	return &directoryRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *directoryRepository) ListHospitals(ctx context.Context) ([]model.Record, error) {
	records, err := r.selectRecords(ctx, listHospitalsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return records, nil
}

func (r *directoryRepository) ListDoctors(ctx context.Context) ([]model.Record, error) {
	records, err := r.selectRecords(ctx, listDoctorsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return records, nil
}
