package blood

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/service/blood"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Service interface {
	Donate(ctx context.Context, req *model.DonateBloodRequest) error
	ListAvailability(ctx context.Context) ([]model.Record, error)
	ListRecords(ctx context.Context) ([]model.Record, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/blood")
	{
		group.GET("/available", h.ListAvailability)
		group.GET("/records", h.ListRecords)
		group.POST("/donate", h.Donate)
	}
}

func (h *Handler) RegisterLegacyRoutes(r *gin.RouterGroup) {
	r.GET("/blood", h.ListRecords)
}

func (h *Handler) Donate(c *gin.Context) {
	var req model.DonateBloodRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(c, blood.MsgRequiredFields, err))
		return
	}

	if err := h.service.Donate(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, blood.MsgDonated)
}

func (h *Handler) ListAvailability(c *gin.Context) {
	records, err := h.service.ListAvailability(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithRows(c, records)
}

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.service.ListRecords(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithRows(c, records)
}
