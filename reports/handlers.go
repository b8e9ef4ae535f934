package reports

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"goodjob/apperr"
	"goodjob/middleware"
	"goodjob/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ReportWorking handles POST /api/workings/:id/reports.
//
//	201 Created  {"report": {...}}
//	409 Conflict when the caller already reported the working
func (h *Handler) ReportWorking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithAppError(w, apperr.Unauthorized("authentication required"))
		return
	}
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("working not found"))
		return
	}

	var in Input
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	report, err := h.svc.Create(r.Context(), id, claims.Author().Ref(), in)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"report": report})
}

// GetReports handles GET /api/workings/:id/reports?page=&limit=.
func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("working not found"))
		return
	}
	page := utils.ParsePage(r)
	reports, err := h.svc.List(r.Context(), id, page)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"page":    page.Page,
		"limit":   page.Limit,
	})
}
