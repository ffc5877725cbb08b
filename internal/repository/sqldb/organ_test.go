package sqldb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
)

func TestOrganRequestRoundTrip(t *testing.T) {
	db, mock := setupMockDB(t, DriverPostgres)
	repo := NewOrganRepository(db)

	req := model.CreateOrganRequest{Patient: "Kiran", OrganNeeded: "kidney", BloodGroup: "B+", Contact: "5550123"}

	mock.ExpectExec(`INSERT INTO organs \(patient, organ_needed, blood_group, contact\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs("Kiran", "kidney", "B+", "5550123").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`SELECT id, patient, organ_needed, blood_group, contact FROM organs ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient", "organ_needed", "blood_group", "contact"}).
			AddRow(7, "Kiran", "kidney", "B+", "5550123"))

	ctx := context.Background()
	require.NoError(t, repo.CreateRequest(ctx, req.ToOrganRequest()))

	requests, err := repo.ListRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, &model.OrganRequest{ID: 7, Patient: "Kiran", OrganNeeded: "kidney", BloodGroup: "B+", Contact: "5550123"}, requests[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrganAvailability(t *testing.T) {
	db, mock := setupMockDB(t, DriverMySQL)
	repo := NewOrganRepository(db)

	mock.ExpectQuery(`SELECT \* FROM organ_availability`).
		WillReturnRows(sqlmock.NewRows([]string{"organ", "count"}).AddRow("liver", 2))

	records, err := repo.ListAvailability(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "liver", records[0]["organ"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
