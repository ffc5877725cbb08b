package appointment

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/appointment"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

const (
	msgInvalidID      = "Invalid appointment ID"
	msgLegacyAdded    = "Appointment added successfully!"
	msgLegacyCanceled = "Appointment canceled"
)

// Service is the part of the appointment service the handler uses.
type Service interface {
	Book(ctx context.Context, req *model.BookAppointmentRequest) error
	Create(ctx context.Context, req *model.CreateAppointmentRequest) error
	List(ctx context.Context) ([]*model.Appointment, error)
	Cancel(ctx context.Context, id int64) error
	CancelByPhone(ctx context.Context, req *model.CancelAppointmentRequest) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the JSON routes on the /api group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/book", h.Book)
	r.POST("/cancel", h.CancelByPhone)
	r.GET("/appointments", h.List)
	r.DELETE("/appointments/:id", h.Cancel)
}

// RegisterLegacyRoutes mounts the plain-text routes on the legacy group.
func (h *Handler) RegisterLegacyRoutes(r *gin.RouterGroup) {
	r.GET("/appointments", h.List)
	r.POST("/appointments", h.LegacyCreate)
	r.DELETE("/cancel/:id", h.LegacyCancel)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(c, appointment.MsgAllFieldsRequired, err))
		return
	}

	if err := h.service.Book(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointment.MsgBooked)
}

func (h *Handler) CancelByPhone(c *gin.Context) {
	var req model.CancelAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(c, appointment.MsgPhoneRequired, err))
		return
	}

	if err := h.service.CancelByPhone(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointment.MsgCancelled)
}

func (h *Handler) List(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithRows(c, appointments)
}

func (h *Handler) Cancel(c *gin.Context) {
	if err := h.cancel(c); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointment.MsgCancelled)
}

func (h *Handler) LegacyCreate(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(c, appointment.MsgAllFieldsRequired, err))
		return
	}

	if err := h.service.Create(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithText(c, msgLegacyAdded)
}

func (h *Handler) LegacyCancel(c *gin.Context) {
	if err := h.cancel(c); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithText(c, msgLegacyCanceled)
}

func (h *Handler) cancel(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errors.BadRequest(msgInvalidID, err)
	}
	return h.service.Cancel(c.Request.Context(), id)
}

