package v1

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/flexprice/azpay/internal/api/dto"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/types"
	"github.com/gin-gonic/gin"
)

type GatewayHandler struct {
	manager *base.Manager
	log     *logger.Logger
}

func NewGatewayHandler(manager *base.Manager, log *logger.Logger) *GatewayHandler {
	return &GatewayHandler{manager: manager, log: log}
}

// @Summary List gateways
// @Description List the configured gateways and their operations
// @Tags Gateways
// @Produce json
// @Success 200 {object} dto.ListGatewaysResponse
// @Router /gateways [get]
func (h *GatewayHandler) ListGateways(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListGatewaysResponse{Gateways: h.manager.Describe()})
}

// @Summary Invoke a gateway operation
// @Description Run a named operation with JSON params and return the response envelope.
// @Description Gateway business failures are reported inside the envelope with ok=false.
// @Tags Gateways
// @Accept json
// @Produce json
// @Param gateway path string true "Gateway"
// @Param operation path string true "Operation name"
// @Param dry_run query bool false "Build the request without sending it"
// @Success 200 {object} base.Envelope
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /gateways/{gateway}/{operation} [post]
func (h *GatewayHandler) Invoke(c *gin.Context) {
	client, params, err := h.prepare(c)
	if err != nil {
		c.Error(err)
		return
	}

	var opts []base.CallOption
	if raw, ok := c.GetQuery("dry_run"); ok {
		dryRun, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("dry_run must be a boolean").
				Mark(ierr.ErrValidation))
			return
		}
		opts = append(opts, base.CallDryRun(dryRun))
	}

	env, err := client.Invoke(c.Request.Context(), c.Param("operation"), params, opts...)
	if err != nil {
		h.log.Errorw("gateway operation failed",
			"gateway", client.Name(),
			"operation", c.Param("operation"),
			"error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, env)
}

// @Summary Render a gateway operation as an HTML form
// @Description Build the request in dry-run mode and render it as a self-submitting form. Only form encoded operations qualify.
// @Tags Gateways
// @Accept json
// @Produce html
// @Param gateway path string true "Gateway"
// @Param operation path string true "Operation name"
// @Success 200 {string} string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /gateways/{gateway}/{operation}/form [post]
func (h *GatewayHandler) RenderForm(c *gin.Context) {
	client, params, err := h.prepare(c)
	if err != nil {
		c.Error(err)
		return
	}

	operation := c.Param("operation")
	if ep, ok := client.Endpoint(operation); ok && ep.WireEncoding() != base.EncodingForm {
		c.Error(ierr.NewErrorf("%s %s is not a form endpoint", client.Name(), operation).
			WithHintf("Operation %s cannot be rendered as an HTML form", operation).
			WithReportableDetails(map[string]any{
				"operation": operation,
				"encoding":  ep.WireEncoding(),
			}).
			Mark(ierr.ErrValidation))
		return
	}

	env, err := client.Invoke(c.Request.Context(), operation, params, base.CallDryRun(true))
	if err != nil {
		c.Error(err)
		return
	}

	page, err := env.DryRun.HTML()
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// prepare resolves the gateway client and decodes the JSON params.
// An empty body is an empty parameter set.
func (h *GatewayHandler) prepare(c *gin.Context) (*base.Client, map[string]any, error) {
	client, err := h.manager.GetClient(base.GatewayType(c.Param("gateway")))
	if err != nil {
		return nil, nil, err
	}

	body, err := c.GetRawData()
	if err != nil {
		return nil, nil, ierr.WithError(err).
			WithHint("Failed to read request body").
			Mark(ierr.ErrValidation)
	}

	params := make(map[string]any)
	if len(bytes.TrimSpace(body)) == 0 {
		return client, params, nil
	}
	if err := types.WireJSON.Unmarshal(body, &params); err != nil {
		return nil, nil, ierr.WithError(err).
			WithHint("Request body must be a JSON object").
			Mark(ierr.ErrValidation)
	}

	return client, params, nil
}
