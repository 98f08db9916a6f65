// README: Demand forecast handler for the reporting workflow.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pulse/internal/modules/demand"
	"pulse/internal/types"
)

type DemandHandler struct {
	demand *demand.Service
}

func NewDemandHandler(svc *demand.Service) *DemandHandler {
	return &DemandHandler{demand: svc}
}

// Forecast answers GET /v1/demand/forecast?lat=..&lng=..[&at=RFC3339].
func (h *DemandHandler) Forecast(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}
	loc := types.Point{Lat: lat, Lng: lng}
	if !loc.Valid() {
		writeError(c, http.StatusBadRequest, "coordinates out of range")
		return
	}

	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "at must be RFC3339")
			return
		}
		at = parsed
	}

	writeJSON(c, http.StatusOK, h.demand.Predict(c.Request.Context(), loc, at))
}
