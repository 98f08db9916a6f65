// README: Fare quote handler for the ride-request workflow.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/modules/pricing"
	"pulse/internal/types"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

func (h *PricingHandler) Quote(c *gin.Context) {
	var req types.RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	quote, err := h.pricing.Quote(c.Request.Context(), req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quote)
}
