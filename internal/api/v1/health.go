package v1

import (
	"net/http"

	"github.com/flexprice/azpay/internal/api/dto"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	manager *base.Manager
}

func NewHealthHandler(manager *base.Manager) *HealthHandler {
	return &HealthHandler{manager: manager}
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Gateways: len(h.manager.List()),
	})
}
