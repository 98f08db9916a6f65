// README: Driver ranking handler for the dispatch workflow.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/modules/matching"
	"pulse/internal/types"
)

type MatchingHandler struct {
	matching *matching.Service
}

func NewMatchingHandler(svc *matching.Service) *MatchingHandler {
	return &MatchingHandler{matching: svc}
}

type rankReq struct {
	Request types.RideRequest `json:"request"`
	Drivers []matching.Driver `json:"drivers"`
}

func (h *MatchingHandler) Rank(c *gin.Context) {
	var req rankReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.matching.Rank(req.Request, req.Drivers)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
