package directory

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListHospitals(ctx context.Context) ([]model.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]model.Record)
	return records, args.Error(1)
}

func (m *mockRepo) ListDoctors(ctx context.Context) ([]model.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]model.Record)
	return records, args.Error(1)
}

func TestDirectory(t *testing.T) {
	repo := new(mockRepo)
	hospitals := []model.Record{{"name": "City Care"}}
	repo.On("ListHospitals", mock.Anything).Return(hospitals, nil)
	repo.On("ListDoctors", mock.Anything).Return(nil, stderrors.New("boom"))

	svc := NewService(repo)

	got, err := svc.ListHospitals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hospitals, got)

	_, err = svc.ListDoctors(context.Background())
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode())
	assert.Equal(t, MsgDatabaseError, appErr.Message)
}
