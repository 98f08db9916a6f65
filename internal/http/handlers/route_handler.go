// README: ETA preview handler backed by the optional maps integration.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse/internal/maps"
	"pulse/internal/types"
)

type RouteHandler struct {
	routes *maps.RouteService // nil when no API key is configured
}

func NewRouteHandler(routes *maps.RouteService) *RouteHandler {
	return &RouteHandler{routes: routes}
}

// Estimate answers GET /v1/routes/estimate?origin_lat=..&origin_lng=..&dest_lat=..&dest_lng=..
func (h *RouteHandler) Estimate(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "route estimation is not configured")
		return
	}

	origin, ok1 := pointFromQuery(c, "origin_lat", "origin_lng")
	dest, ok2 := pointFromQuery(c, "dest_lat", "dest_lng")
	if !ok1 || !ok2 {
		writeError(c, http.StatusBadRequest, "origin and destination coordinates are required")
		return
	}

	duration, distance, err := h.routes.TripEstimate(c.Request.Context(), origin, dest)
	if err != nil {
		writeError(c, http.StatusBadGateway, "route estimation failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"duration_minutes": duration.Minutes(),
		"distance":         distance,
	})
}

func pointFromQuery(c *gin.Context, latKey, lngKey string) (types.Point, bool) {
	lat, err1 := strconv.ParseFloat(c.Query(latKey), 64)
	lng, err2 := strconv.ParseFloat(c.Query(lngKey), 64)
	if err1 != nil || err2 != nil {
		return types.Point{}, false
	}
	p := types.Point{Lat: lat, Lng: lng}
	return p, p.Valid()
}
