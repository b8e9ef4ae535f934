package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"goodjob/middleware"
	"goodjob/ratelim"
	"goodjob/reports"
	"goodjob/utils"
	"goodjob/workings"
)

// Pinger is a dependency the health check probes.
type Pinger func(ctx context.Context) error

// Dependency is a named Pinger. Dependencies are checked in order.
type Dependency struct {
	Name string
	Ping Pinger
}

func AddWorkingRoutes(router *httprouter.Router, h *workings.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/workings", auth.Authenticate(rl.Limit(h.CreateWorking)))
	router.GET("/api/workings/:id", h.GetWorking)
	router.POST("/api/workings/:id/archive", auth.Authenticate(middleware.RequireRole("admin", h.ArchiveWorking)))
}

func AddReportRoutes(router *httprouter.Router, h *reports.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/workings/:id/reports", auth.Authenticate(rl.Limit(h.ReportWorking)))
	router.GET("/api/workings/:id/reports", h.GetReports)
}

// AddUtilityRoutes registers GET /health. It answers 503 naming the first
// dependency whose ping fails.
func AddUtilityRoutes(router *httprouter.Router, deps []Dependency) {
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				utils.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"failed": dep.Name,
				})
				return
			}
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
