package services

import (
	"context"
	"errors"
	"strings"

	"github.com/poofware/pledge-service/internal/cache"
	"github.com/poofware/pledge-service/internal/metrics"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/utils"
)

// VerificationOutcome carries no failure reason; every rejection looks the
// same to the caller.
type VerificationOutcome struct {
	Verified bool
	Name     string
}

type VerificationService interface {
	Verify(ctx context.Context, token string) VerificationOutcome
}

type verificationService struct {
	repo       repositories.SignatoryRepository
	tracker    Tracker
	statsCache cache.StatsCache
}

func NewVerificationService(
	repo repositories.SignatoryRepository,
	tracker Tracker,
	statsCache cache.StatsCache,
) VerificationService {
	return &verificationService{repo: repo, tracker: tracker, statsCache: statsCache}
}

func (s *verificationService) Verify(ctx context.Context, token string) VerificationOutcome {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.invalid("empty token", nil)
	}

	sig, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return s.invalid("unknown token", nil)
		}
		return s.invalid("token lookup failed", err)
	}

	if sig.Verified {
		metrics.VerificationsTotal.WithLabelValues("already_verified").Inc()
		return VerificationOutcome{Verified: true, Name: sig.Name}
	}

	if err := s.repo.MarkVerified(ctx, sig.ID); err != nil {
		if !errors.Is(err, utils.ErrNoRowsUpdated) {
			return s.invalid("verify update failed", err)
		}
		// Lost a race with another click on the same link; success only
		// if the row really is verified now.
		current, getErr := s.repo.GetByID(ctx, sig.ID)
		if getErr != nil || !current.Verified {
			return s.invalid("row changed during verification", getErr)
		}
		metrics.VerificationsTotal.WithLabelValues("already_verified").Inc()
		return VerificationOutcome{Verified: true, Name: current.Name}
	}

	s.statsCache.Invalidate(ctx)
	utils.Logger.WithField("signatory_id", sig.ID).Info("Pledge signature verified")
	trackEvent(ctx, s.tracker, sig.ID.String(), EventPledgeVerified, nil)

	metrics.VerificationsTotal.WithLabelValues("verified").Inc()
	return VerificationOutcome{Verified: true, Name: sig.Name}
}

func (s *verificationService) invalid(reason string, err error) VerificationOutcome {
	metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
	entry := utils.Logger.WithField("reason", reason)
	if err != nil {
		entry.WithError(err).Error("Verification failed")
	} else {
		entry.Info("Verification rejected")
	}
	return VerificationOutcome{}
}
