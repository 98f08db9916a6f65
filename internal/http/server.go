// README: API surface; registers HTTP routes and delegates to engine services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pulse/internal/http/handlers"
	"pulse/internal/http/middleware"
	"pulse/internal/maps"
	"pulse/internal/market"
	"pulse/internal/modules/demand"
	"pulse/internal/modules/fraud"
	"pulse/internal/modules/matching"
	"pulse/internal/modules/pricing"
)

type ServerDeps struct {
	Market   *market.Store
	Supply   *market.RedisSupplyProvider // optional
	Demand   *demand.Service
	Pricing  *pricing.Service
	Fraud    *fraud.Service
	Matching *matching.Service
	Routes   *maps.RouteService // optional
	Logger   *logrus.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(s.deps.Logger))
	r.Use(middleware.Logging(s.deps.Logger))

	marketHandler := handlers.NewMarketHandler(s.deps.Market, s.deps.Supply)
	r.GET("/healthz", marketHandler.Health)

	v1 := r.Group("/v1")
	{
		v1.POST("/pricing/quote", handlers.NewPricingHandler(s.deps.Pricing).Quote)
		v1.POST("/fraud/assess", handlers.NewFraudHandler(s.deps.Fraud).Assess)
		v1.POST("/matching/rank", handlers.NewMatchingHandler(s.deps.Matching).Rank)
		v1.GET("/demand/forecast", handlers.NewDemandHandler(s.deps.Demand).Forecast)
		v1.GET("/market/snapshot", marketHandler.Snapshot)
		v1.POST("/drivers/:id/location", marketHandler.TrackDriver)
		v1.DELETE("/drivers/:id/location", marketHandler.UntrackDriver)
		v1.GET("/routes/estimate", handlers.NewRouteHandler(s.deps.Routes).Estimate)
	}

	return r
}
