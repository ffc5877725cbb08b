package directory

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

type Service interface {
	ListHospitals(ctx context.Context) ([]model.Record, error)
	ListDoctors(ctx context.Context) ([]model.Record, error)
}

// Handler serves hospital and doctor listings.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
	r.GET("/hospitals", h.ListHospitals)
}

func (h *Handler) RegisterLegacyRoutes(r *gin.RouterGroup) {
	r.GET("/hospital", h.ListHospitals)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	records, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithRows(c, records)
}

func (h *Handler) ListHospitals(c *gin.Context) {
	records, err := h.service.ListHospitals(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithRows(c, records)
}
