// README: Fraud assessment handler for the trust and safety workflow.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/modules/fraud"
	"pulse/internal/types"
)

type FraudHandler struct {
	fraud *fraud.Service
}

func NewFraudHandler(svc *fraud.Service) *FraudHandler {
	return &FraudHandler{fraud: svc}
}

type assessReq struct {
	Request types.RideRequest `json:"request"`
	User    fraud.UserData    `json:"user"`
}

func (h *FraudHandler) Assess(c *gin.Context) {
	var req assessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	assessment, err := h.fraud.Assess(req.Request, req.User)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, assessment)
}
