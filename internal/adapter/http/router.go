package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health       *Handler
	Allocations  *AllocationHandler
	Dispositions *DispositionHandler
	Constraints  *ConstraintHandler
	Campaigns    *CampaignHandler
}

// Register mounts every route. mutating wraps the POST routes, typically
// with the idempotency middleware.
func Register(e *echo.Echo, h Handlers, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/ready", h.Health.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/dispositions/rules", h.Dispositions.Rules)
	e.GET("/customers/:customer_id/dispositions", h.Dispositions.History)
	e.GET("/customers/:customer_id/constraints", h.Constraints.ListActive)

	e.POST("/agents/:agent_id/allocations", h.Allocations.Allocate, mutating...)
	e.POST("/agents/:agent_id/customers/:customer_id/dispositions", h.Dispositions.Submit, mutating...)
	e.POST("/campaigns/:campaign_id/distribute", h.Campaigns.Distribute, mutating...)
	e.POST("/campaigns/:campaign_id/rechurn", h.Campaigns.Rechurn, mutating...)
}
