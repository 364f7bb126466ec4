package controllers

import (
	"net/http"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/services"
	"github.com/poofware/pledge-service/internal/utils"
)

type PledgeController struct {
	svc services.PledgeService
}

func NewPledgeController(s services.PledgeService) *PledgeController {
	return &PledgeController{svc: s}
}

// -----------------------------------------------------------------------------
// POST /api/pledge/submit
// -----------------------------------------------------------------------------
func (c *PledgeController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SubmitPledgeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.Submit(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /api/pledge/resend
// -----------------------------------------------------------------------------
func (c *PledgeController) ResendHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ResendVerificationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.ResendVerification(r.Context(), req.Email)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
