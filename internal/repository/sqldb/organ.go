package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const (
	insertOrganRequestQuery = `INSERT INTO organs (patient, organ_needed, blood_group, contact) VALUES (?, ?, ?, ?)`
	listOrganRequestsQuery  = `SELECT id, patient, organ_needed, blood_group, contact FROM organs ORDER BY id`
	listOrganAvailability   = `SELECT * FROM organ_availability`
)

type organRepository struct {
	BaseRepository
}

func NewOrganRepository(db *sqlx.DB) repository.OrganRepository {
	return &organRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *organRepository) CreateRequest(ctx context.Context, request *model.OrganRequest) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertOrganRequestQuery),
		request.Patient,
		request.OrganNeeded,
		request.BloodGroup,
		request.Contact,
	)
	if err != nil {
		return fmt.Errorf("failed to create organ request: %w", err)
	}
	return nil
}

func (r *organRepository) ListRequests(ctx context.Context) ([]*model.OrganRequest, error) {
	requests := []*model.OrganRequest{}
	if err := r.db.SelectContext(ctx, &requests, r.db.Rebind(listOrganRequestsQuery)); err != nil {
		return nil, fmt.Errorf("failed to list organ requests: %w", err)
	}
	return requests, nil
}

func (r *organRepository) ListAvailability(ctx context.Context) ([]model.Record, error) {
	records, err := r.selectRecords(ctx, listOrganAvailability)
	if err != nil {
		return nil, fmt.Errorf("failed to list organ availability: %w", err)
	}
	return records, nil
}
