package controllers

import (
	"net/http"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/services"
	"github.com/poofware/pledge-service/internal/utils"
)

type StatsController struct {
	svc services.StatsService
}

func NewStatsController(s services.StatsService) *StatsController {
	return &StatsController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /api/stats
// -----------------------------------------------------------------------------
func (c *StatsController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := c.svc.GetStats(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.StatsResponse{Success: true, Data: *stats})
}
