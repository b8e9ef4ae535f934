package workings

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"goodjob/apperr"
	"goodjob/middleware"
	"goodjob/models"
	"goodjob/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreateWorking handles POST /api/workings. The author always comes from
// the token; any author sent in the body is ignored.
func (h *Handler) CreateWorking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithAppError(w, apperr.Unauthorized("authentication required"))
		return
	}

	var raw map[string]any
	if err := utils.DecodeJSON(r, &raw); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if raw == nil {
		utils.RespondWithAppError(w, apperr.BadRequest("request body must be a JSON object"))
		return
	}

	res, err := h.svc.Submit(r.Context(), claims.Author(), raw)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// GetWorking handles GET /api/workings/:id.
func (h *Handler) GetWorking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("working not found"))
		return
	}
	working, err := h.svc.Get(r.Context(), id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, working)
}

// ArchiveWorking handles POST /api/workings/:id/archive.
func (h *Handler) ArchiveWorking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("working not found"))
		return
	}

	var body struct {
		IsArchived *bool  `json:"is_archived"`
		Reason     string `json:"reason"`
	}
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if body.IsArchived == nil {
		utils.RespondWithAppError(w, apperr.Validation("is_archived is required"))
		return
	}

	working, err := h.svc.Archive(r.Context(), id, models.Archive{IsArchived: *body.IsArchived, Reason: body.Reason})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, working)
}
