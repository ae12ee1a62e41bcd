package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apnaswastha/registry-api/internal/handler"
	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/service/feedback"
)

type Handler struct {
	service *feedback.Service
}

func NewHandler(service *feedback.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/feedback", h.CreateFeedback)
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.CreateFeedback(c.Request.Context(), &req); err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted"})
}
