// README: Market snapshot, health, and driver supply tracking handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/market"
	"pulse/internal/types"
)

type MarketHandler struct {
	market *market.Store
	supply *market.RedisSupplyProvider // nil when Redis is not configured
}

func NewMarketHandler(store *market.Store, supply *market.RedisSupplyProvider) *MarketHandler {
	return &MarketHandler{market: store, supply: supply}
}

// Snapshot exposes the current market snapshot to the reporting workflow.
func (h *MarketHandler) Snapshot(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.market.Current())
}

// Health reports snapshot freshness for probes and dashboards.
func (h *MarketHandler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"status":             "ok",
		"snapshot_age":       h.market.SnapshotAge().String(),
		"degraded_refreshes": h.market.DegradedRefreshes(),
	})
}

type trackDriverReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackDriver upserts a driver position into the supply GEO set.
func (h *MarketHandler) TrackDriver(c *gin.Context) {
	if h.supply == nil {
		writeError(c, http.StatusServiceUnavailable, "driver supply tracking is not configured")
		return
	}
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	var req trackDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pos := types.Point{Lat: req.Lat, Lng: req.Lng}
	if !pos.Valid() {
		writeError(c, http.StatusBadRequest, "coordinates out of range")
		return
	}
	if err := h.supply.TrackDriver(c.Request.Context(), types.ID(id), pos); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

// UntrackDriver removes a driver from the supply GEO set.
func (h *MarketHandler) UntrackDriver(c *gin.Context) {
	if h.supply == nil {
		writeError(c, http.StatusServiceUnavailable, "driver supply tracking is not configured")
		return
	}
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	if err := h.supply.UntrackDriver(c.Request.Context(), types.ID(id)); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
