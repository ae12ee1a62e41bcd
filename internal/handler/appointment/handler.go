package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apnaswastha/registry-api/internal/handler"
	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.CreateAppointment(c.Request.Context(), &req); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment created"})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	listings, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	if listings == nil {
		listings = []*model.AppointmentListing{}
	}
	c.JSON(http.StatusOK, listings)
}
