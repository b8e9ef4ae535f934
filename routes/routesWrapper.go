package routes

import (
	"github.com/julienschmidt/httprouter"

	"goodjob/middleware"
	"goodjob/ratelim"
	"goodjob/reports"
	"goodjob/workings"
)

// Handlers groups the domain handlers mounted on the router.
type Handlers struct {
	Workings *workings.Handler
	Reports  *reports.Handler
}

func RoutesWrapper(router *httprouter.Router, h Handlers, auth *middleware.Auth, rateLimiter *ratelim.RateLimiter, deps []Dependency) {
	AddWorkingRoutes(router, h.Workings, auth, rateLimiter)
	AddReportRoutes(router, h.Reports, auth, rateLimiter)
	AddUtilityRoutes(router, deps)
}
