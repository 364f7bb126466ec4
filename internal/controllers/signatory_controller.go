package controllers

import (
	"net/http"
	"strconv"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/services"
	"github.com/poofware/pledge-service/internal/utils"
)

type SignatoryController struct {
	svc services.SignatoryService
}

func NewSignatoryController(s services.SignatoryService) *SignatoryController {
	return &SignatoryController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /api/signatories?limit=&offset=
// -----------------------------------------------------------------------------
func (c *SignatoryController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		utils.HandleAppError(w, utils.NewValidationError(map[string]string{"limit": "Must be an integer"}))
		return
	}
	offset, err := optionalInt(q.Get("offset"))
	if err != nil {
		utils.HandleAppError(w, utils.NewValidationError(map[string]string{"offset": "Must be an integer"}))
		return
	}

	data, err := c.svc.ListPublic(r.Context(), limit, offset)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListSignatoriesResponse{Success: true, Data: data})
}

// -----------------------------------------------------------------------------
// GET /api/debug/signatories (non-production only)
// -----------------------------------------------------------------------------
func (c *SignatoryController) DebugListHandler(w http.ResponseWriter, r *http.Request) {
	data, err := c.svc.ListAll(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DebugSignatoriesResponse{Success: true, Data: data})
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
