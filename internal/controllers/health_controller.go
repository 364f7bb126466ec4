package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/services"
	"github.com/poofware/pledge-service/internal/utils"
)

const healthTimeout = 2 * time.Second

type HealthController struct {
	svc services.SignatoryService
}

func NewHealthController(s services.SignatoryService) *HealthController {
	return &HealthController{svc: s}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	// Storage is the only hard dependency.
	if err := c.svc.Ping(ctx); err != nil {
		utils.Logger.WithError(err).Error("pledge-service unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
