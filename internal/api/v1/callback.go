package v1

import (
	"net/http"

	"github.com/flexprice/azpay/internal/api/dto"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/gin-gonic/gin"
)

type CallbackHandler struct {
	manager *base.Manager
	log     *logger.Logger
}

func NewCallbackHandler(manager *base.Manager, log *logger.Logger) *CallbackHandler {
	return &CallbackHandler{manager: manager, log: log}
}

// @Summary Receive a provider callback
// @Description Verify the signature of a form encoded provider callback and return its payload
// @Tags Callbacks
// @Accept x-www-form-urlencoded
// @Produce json
// @Param gateway path string true "Gateway (epoint or azericard)"
// @Success 200 {object} dto.CallbackResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /callbacks/{gateway} [post]
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	gateway := base.GatewayType(c.Param("gateway"))

	verifier, err := h.manager.GetCallbackVerifier(gateway)
	if err != nil {
		c.Error(err)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Callback must be form encoded").
			Mark(ierr.ErrValidation))
		return
	}

	payload, err := verifier.VerifyCallback(c.Request.Context(), c.Request.Form)
	if err != nil {
		h.log.Warnw("callback rejected",
			"gateway", gateway,
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CallbackResponse{
		Gateway:  gateway,
		Verified: true,
		Payload:  payload,
	})
}
