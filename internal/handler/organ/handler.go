package organ

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/organ"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Service interface {
	Request(ctx context.Context, req *model.CreateOrganRequest) error
	ListRequests(ctx context.Context) ([]*model.OrganRequest, error)
	ListAvailability(ctx context.Context) ([]model.Record, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/organs")
	{
		group.GET("/available", h.ListAvailability)
		group.GET("/requests", h.ListRequests)
		group.POST("/request", h.Request)
	}
}

func (h *Handler) RegisterLegacyRoutes(r *gin.RouterGroup) {
	r.GET("/organs", h.ListRequests)
	r.POST("/organs", h.LegacyRequest)
}

func (h *Handler) Request(c *gin.Context) {
	if err := h.request(c); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, organ.MsgRequested)
}

func (h *Handler) LegacyRequest(c *gin.Context) {
	if err := h.request(c); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithText(c, organ.MsgRequested)
}

func (h *Handler) request(c *gin.Context) error {
	var req model.CreateOrganRequest
	if err := c.ShouldBind(&req); err != nil {
		return httputil.BindError(c, organ.MsgRequiredFields, err)
	}
	return h.service.Request(c.Request.Context(), &req)
}

func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListRequests(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithRows(c, requests)
}

func (h *Handler) ListAvailability(c *gin.Context) {
	records, err := h.service.ListAvailability(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithRows(c, records)
}
