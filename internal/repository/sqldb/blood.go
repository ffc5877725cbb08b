package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const (
	insertDonorQuery      = `INSERT INTO blood_donors (name, blood_group, age, contact, location) VALUES (?, ?, ?, ?, ?)`
	listBloodAvailability = `SELECT * FROM blood_availability`
	listBloodRecordsQuery = `SELECT * FROM blood`
)

type bloodRepository struct {
	BaseRepository
}

func NewBloodRepository(db *sqlx.DB) repository.BloodRepository {
	return &bloodRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *bloodRepository) CreateDonor(ctx context.Context, donor *model.BloodDonor) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertDonorQuery),
		donor.Name,
		donor.BloodGroup,
		donor.Age,
		donor.Contact,
		donor.Location,
	)
	if err != nil {
		return fmt.Errorf("failed to create blood donor: %w", err)
	}
	return nil
}

func (r *bloodRepository) ListAvailability(ctx context.Context) ([]model.Record, error) {
	records, err := r.selectRecords(ctx, listBloodAvailability)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood availability: %w", err)
	}
	return records, nil
}

func (r *bloodRepository) ListRecords(ctx context.Context) ([]model.Record, error) {
	records, err := r.selectRecords(ctx, listBloodRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood records: %w", err)
	}
	return records, nil
}
