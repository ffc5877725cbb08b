package appointment

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/appointment"
	"github.com/jwalitptl/hospital-api/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Book(ctx context.Context, req *model.BookAppointmentRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockService) Create(ctx context.Context, req *model.CreateAppointmentRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockService) List(ctx context.Context) ([]*model.Appointment, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]*model.Appointment)
	return rows, args.Error(1)
}

func (m *mockService) Cancel(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) CancelByPhone(ctx context.Context, req *model.CancelAppointmentRequest) error {
	return m.Called(ctx, req).Error(0)
}

func setup(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(svc)
	h.RegisterRoutes(engine.Group("/api"))
	h.RegisterLegacyRoutes(engine.Group("/legacy"))
	return engine
}

func do(engine *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const bookingJSON = `{"name":"Asha","phone":"5550100","doctor":"Dr. Rao","date":"2025-01-10","time":"10:00","department":"Cardiology"}`

func TestBookSuccess(t *testing.T) {
	svc := new(mockService)
	svc.On("Book", mock.Anything, &model.BookAppointmentRequest{
		Name: "Asha", Phone: "5550100", Doctor: "Dr. Rao", Date: "2025-01-10", Time: "10:00", Department: "Cardiology",
	}).Return(nil)

	w := do(setup(svc), http.MethodPost, "/api/book", "application/json", bookingJSON)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Appointment booked successfully!"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestBookAcceptsForm(t *testing.T) {
	svc := new(mockService)
	svc.On("Book", mock.Anything, mock.MatchedBy(func(r *model.BookAppointmentRequest) bool {
		return r.Name == "Asha" && r.Time == "10:00"
	})).Return(nil)

	form := url.Values{
		"name": {"Asha"}, "phone": {"5550100"}, "doctor": {"Dr. Rao"},
		"date": {"2025-01-10"}, "time": {"10:00"}, "department": {"Cardiology"},
	}
	w := do(setup(svc), http.MethodPost, "/api/book", "application/x-www-form-urlencoded", form.Encode())

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestBookMissingFieldNeverReachesService(t *testing.T) {
	svc := new(mockService)

	w := do(setup(svc), http.MethodPost, "/api/book", "application/json", `{"name":"Asha","phone":"5550100"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"All fields are required!"}`, w.Body.String())
	svc.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
}

func TestBookErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"slot full", errors.NewSlotFull(appointment.MsgSlotFull), http.StatusBadRequest,
			`{"success":false,"message":"This time slot is full! Please choose another."}`},
		{"datastore", errors.Internal(appointment.MsgInsertFailed, stderrors.New("dial tcp: refused")), http.StatusInternalServerError,
			`{"success":false,"message":"Database insert failed!"}`},
		{"untyped", stderrors.New("boom"), http.StatusInternalServerError,
			`{"success":false,"message":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Book", mock.Anything, mock.Anything).Return(tt.err)

			w := do(setup(svc), http.MethodPost, "/api/book", "application/json", bookingJSON)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestCancelByPhone(t *testing.T) {
	t.Run("missing phone", func(t *testing.T) {
		svc := new(mockService)
		w := do(setup(svc), http.MethodPost, "/api/cancel", "application/json", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Phone number required."}`, w.Body.String())
	})

	t.Run("no match", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CancelByPhone", mock.Anything, &model.CancelAppointmentRequest{Phone: "000"}).
			Return(errors.NotFound(appointment.MsgNoMatchForPhone, nil))

		w := do(setup(svc), http.MethodPost, "/api/cancel", "application/json", `{"phone":"000"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"No appointment found for that phone number."}`, w.Body.String())
	})

	t.Run("removed", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CancelByPhone", mock.Anything, &model.CancelAppointmentRequest{Phone: "5550100"}).Return(nil)

		w := do(setup(svc), http.MethodPost, "/api/cancel", "application/json", `{"phone":"5550100"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Appointment cancelled successfully!"}`, w.Body.String())
	})
}

func TestCancelByID(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, int64(999)).Return(nil)
	engine := setup(svc)

	w := do(engine, http.MethodDelete, "/api/appointments/999", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(engine, http.MethodDelete, "/legacy/cancel/999", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Appointment canceled", w.Body.String())

	w = do(engine, http.MethodDelete, "/api/appointments/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNumberOfCalls(t, "Cancel", 2)
}

func TestListRendersEmptyArray(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything).Return(nil, nil)

	w := do(setup(svc), http.MethodGet, "/legacy/appointments", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestLegacyCreate(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *model.CreateAppointmentRequest) bool {
		return r.Name == "Ravi" && r.Age == model.NewOptionalInt(42)
	})).Return(nil)

	w := do(setup(svc), http.MethodPost, "/legacy/appointments", "application/json",
		`{"name":"Ravi","age":"42","department":"Ortho","doctor":"Dr. Iyer","date":"2025-01-11"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Appointment added successfully!", w.Body.String())
	svc.AssertExpectations(t)
}

func TestLegacyCreateDatastoreFailureIsStructured(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(errors.Internal(appointment.MsgInsertFailed, stderrors.New("boom")))

	w := do(setup(svc), http.MethodPost, "/legacy/appointments", "application/json",
		`{"name":"Ravi","department":"Ortho","doctor":"Dr. Iyer","date":"2025-01-11"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Database insert failed!"}`, w.Body.String())
}

func TestNumericPhoneCountsAsPresent(t *testing.T) {
	svc := new(mockService)
	svc.On("Book", mock.Anything, &model.BookAppointmentRequest{
		Name: "Asha", Phone: "5551234", Doctor: "Dr. Rao", Date: "2025-01-10", Time: "10:00", Department: "Cardiology",
	}).Return(nil)
	svc.On("CancelByPhone", mock.Anything, &model.CancelAppointmentRequest{Phone: "5551234"}).Return(nil)
	engine := setup(svc)

	w := do(engine, http.MethodPost, "/api/book", "application/json",
		`{"name":"Asha","phone":5551234,"doctor":"Dr. Rao","date":"2025-01-10","time":"10:00","department":"Cardiology"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Appointment booked successfully!"}`, w.Body.String())

	w = do(engine, http.MethodPost, "/api/cancel", "application/json", `{"phone":5551234}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Appointment cancelled successfully!"}`, w.Body.String())

	svc.AssertExpectations(t)
}

func TestNullPhoneIsMissing(t *testing.T) {
	svc := new(mockService)

	w := do(setup(svc), http.MethodPost, "/api/cancel", "application/json", `{"phone":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Phone number required."}`, w.Body.String())
	svc.AssertNotCalled(t, "CancelByPhone", mock.Anything, mock.Anything)
}

func TestOversizedBodyWithoutLengthIs413(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockService)
	engine := gin.New()
	engine.Use(middleware.SizeLimit(middleware.SizeLimitConfig{MaxBodySize: 64, ErrorMessage: "Request body too large"}))
	NewHandler(svc).RegisterRoutes(engine.Group("/api"))

	body := `{"name":"` + strings.Repeat("a", 512) + `","phone":"5550100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Request body too large"}`, w.Body.String())
	svc.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
}
