package qrcode

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apnaswastha/registry-api/internal/handler"
	"github.com/apnaswastha/registry-api/internal/qr"
)

// Handler serves the ad-hoc QR endpoint. Results are rendered per request
// and never persisted.
type Handler struct {
	composer *qr.Composer
}

func NewHandler(composer *qr.Composer) *Handler {
	return &Handler{composer: composer}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/generate-qr", h.GenerateQR)
}

func (h *Handler) GenerateQR(c *gin.Context) {
	data, ok := c.GetQuery("data")
	if !ok || data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	png, err := h.composer.EncodeText(data)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
