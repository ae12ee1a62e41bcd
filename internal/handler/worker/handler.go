package worker

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/apnaswastha/registry-api/internal/handler"
	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/service/registration"
)

const listLimit = 200

type Handler struct {
	service *registration.Service
	logger  zerolog.Logger

	// listEnabled mounts GET /workers; only the relational backend
	// serves the extended surface.
	listEnabled bool
}

func NewHandler(service *registration.Service, logger zerolog.Logger, listEnabled bool) *Handler {
	return &Handler{service: service, logger: logger, listEnabled: listEnabled}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	workers := r.Group("/workers")
	{
		workers.POST("", h.RegisterWorker)
		if h.listEnabled {
			workers.GET("", h.ListWorkers)
		}
		workers.GET("/:healthId", h.GetWorker)
		workers.GET("/:healthId/qr.png", h.GetWorkerQR)
		workers.GET("/:healthId/face.png", h.GetWorkerFace)
	}
}

// RegisterWorker accepts a registration submission and returns resource
// locators for the saved record's derived assets.
func (h *Handler) RegisterWorker(c *gin.Context) {
	var req model.RegisterWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	h.logger.Info().Str("health_id", result.HealthID).Msg("worker registered")

	base := handler.BaseURL(c)
	resp := model.RegisterWorkerResponse{
		Message:  "Worker saved",
		HealthID: result.HealthID,
		QRURL:    base + result.QRPath,
	}
	if result.FacePath != "" {
		faceURL := base + result.FacePath
		resp.FaceURL = &faceURL
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetWorker(c *gin.Context) {
	worker, err := h.service.Lookup(c.Request.Context(), c.Param("healthId"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

func (h *Handler) ListWorkers(c *gin.Context) {
	workers, err := h.service.List(c.Request.Context(), listLimit)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	summaries := make([]model.WorkerSummary, len(workers))
	for i, w := range workers {
		summaries[i].FromWorker(w)
	}
	c.JSON(http.StatusOK, summaries)
}

// GetWorkerQR serves the cached QR PNG, rebuilding it from the stored
// record when the cached asset is missing.
func (h *Handler) GetWorkerQR(c *gin.Context) {
	data, err := h.service.QRImage(c.Request.Context(), c.Param("healthId"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) GetWorkerFace(c *gin.Context) {
	data, err := h.service.FaceImage(c.Request.Context(), c.Param("healthId"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
