package organ

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

func (m *mockRepo) CreateRequest(ctx context.Context, request *model.OrganRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *mockRepo) ListRequests(ctx context.Context) ([]*model.OrganRequest, error) {
	args := m.Called(ctx)
	requests, _ := args.Get(0).([]*model.OrganRequest)
	return requests, args.Error(1)
}

func (m *mockRepo) ListAvailability(ctx context.Context) ([]model.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]model.Record)
	return records, args.Error(1)
}

func TestRequestValidation(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	err := svc.Request(context.Background(), &model.CreateOrganRequest{Patient: "Kiran", OrganNeeded: "kidney"})
	assert.True(t, errors.HasCode(err, errors.ErrBadRequest))
	repo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestRequestStoresFieldsUnchanged(t *testing.T) {
	repo := new(mockRepo)
	repo.On("CreateRequest", mock.Anything, &model.OrganRequest{
		Patient:     "Kiran",
		OrganNeeded: "kidney",
		BloodGroup:  "B+",
		Contact:     "5550123",
	}).Return(nil)

	svc := NewService(repo, nil)
	err := svc.Request(context.Background(), &model.CreateOrganRequest{
		Patient:     "Kiran",
		OrganNeeded: "kidney",
		BloodGroup:  "B+",
		Contact:     "5550123",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListFailures(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListRequests", mock.Anything).Return(nil, stderrors.New("boom"))
	repo.On("ListAvailability", mock.Anything).Return(nil, stderrors.New("boom"))

	svc := NewService(repo, nil)

	_, err := svc.ListRequests(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrInternal))

	_, err = svc.ListAvailability(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrInternal))
}
