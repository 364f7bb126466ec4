package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/poofware/pledge-service/internal/cache"
	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/metrics"
	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/routes"
	"github.com/poofware/pledge-service/internal/utils"
)

const (
	MsgSubmitted = "Thank you for signing! Please check your email to verify your signature."
	MsgResent    = "We've sent you a new verification link. Please check your email to verify your signature."
	MsgDuplicate = "This email address has already signed and verified the pledge."
)

type PledgeService interface {
	// Submit records a validated signature and sends the verification email.
	Submit(ctx context.Context, req dtos.SubmitPledgeRequest) (*dtos.SubmitPledgeResponse, error)
	// ResendVerification issues a fresh token for an unverified signature.
	ResendVerification(ctx context.Context, email string) (*dtos.SubmitPledgeResponse, error)
}

// EmailChecker reports whether an address can receive mail.
type EmailChecker func(ctx context.Context, email string) (bool, error)

type pledgeService struct {
	cfg        *config.Config
	repo       repositories.SignatoryRepository
	mailer     Mailer
	tracker    Tracker
	statsCache cache.StatsCache
	checkEmail EmailChecker
	newToken   func() (string, error)
}

func NewPledgeService(
	cfg *config.Config,
	repo repositories.SignatoryRepository,
	mailer Mailer,
	tracker Tracker,
	statsCache cache.StatsCache,
	opts ...PledgeOption,
) PledgeService {
	s := &pledgeService{
		cfg:        cfg,
		repo:       repo,
		mailer:     mailer,
		tracker:    tracker,
		statsCache: statsCache,
		newToken:   func() (string, error) { return utils.RandomToken(utils.VerificationTokenLength) },
	}
	if cfg.ValidateEmailDeliverability {
		s.checkEmail = func(ctx context.Context, email string) (bool, error) {
			return utils.ValidateEmailDeliverability(ctx, cfg.SendgridAPIKey, email, cfg.LDFlag_ValidateEmailWithSG)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type PledgeOption func(*pledgeService)

// WithEmailChecker replaces the deliverability check; nil disables it.
func WithEmailChecker(fn EmailChecker) PledgeOption {
	return func(s *pledgeService) { s.checkEmail = fn }
}

// WithTokenSource replaces the random token generator.
func WithTokenSource(fn func() (string, error)) PledgeOption {
	return func(s *pledgeService) { s.newToken = fn }
}

// ------------------------------------------------------------------
// Public API
// ------------------------------------------------------------------

func (s *pledgeService) Submit(ctx context.Context, req dtos.SubmitPledgeRequest) (*dtos.SubmitPledgeResponse, error) {
	sig, appErr := s.buildSignatory(req)
	if appErr != nil {
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, appErr
	}

	if err := s.checkDeliverable(ctx, sig.Email); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	//-----------------------------------------------------------------
	// 1) Duplicate policy
	//-----------------------------------------------------------------
	existing, err := s.repo.GetByEmail(ctx, sig.Email)
	switch {
	case errors.Is(err, utils.ErrNotFound):
	case err != nil:
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, utils.NewStorageError(err)
	case existing.Verified:
		metrics.SubmissionsTotal.WithLabelValues("conflict").Inc()
		return nil, utils.NewConflictError(MsgDuplicate, utils.ErrEmailVerified)
	default:
		sig.ID = existing.ID
	}

	token, err := s.newToken()
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, tokenError(err)
	}
	sig.VerificationToken = &token

	//-----------------------------------------------------------------
	// 2) Persist (insert, or overwrite the unverified row in place)
	//-----------------------------------------------------------------
	inserted, err := s.repo.Upsert(ctx, sig)
	if err != nil {
		if errors.Is(err, utils.ErrEmailVerified) {
			// Verified by a concurrent request after our lookup.
			metrics.SubmissionsTotal.WithLabelValues("conflict").Inc()
			return nil, utils.NewConflictError(MsgDuplicate, err)
		}
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, utils.NewStorageError(err)
	}
	isResend := !inserted
	s.statsCache.Invalidate(ctx)

	utils.Logger.WithField("signatory_id", sig.ID).Infof("Pledge recorded (resend=%t)", isResend)

	//-----------------------------------------------------------------
	// 3) Analytics, never on the critical path
	//-----------------------------------------------------------------
	trackEvent(ctx, s.tracker, sig.ID.String(), EventPledgeSubmitted, map[string]string{
		"is_resend":        strconv.FormatBool(isResend),
		"has_organization": strconv.FormatBool(sig.HasOrganization()),
		"display_publicly": strconv.FormatBool(sig.DisplayPublicly),
	})

	//-----------------------------------------------------------------
	// 4) Verification email; the row stays even if this fails
	//-----------------------------------------------------------------
	if err := s.sendVerification(ctx, sig, token, isResend); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return nil, utils.NewDeliveryError(err)
	}

	if isResend {
		metrics.SubmissionsTotal.WithLabelValues("resend").Inc()
	} else {
		metrics.SubmissionsTotal.WithLabelValues("created").Inc()
	}
	return s.response(isResend, token), nil
}

func (s *pledgeService) ResendVerification(ctx context.Context, email string) (*dtos.SubmitPledgeResponse, error) {
	email = utils.NormalizeEmail(email)

	sig, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.NewNotFoundError("No pledge signature found for this email address", err)
		}
		return nil, utils.NewStorageError(err)
	}
	if sig.Verified {
		return nil, utils.NewConflictError(MsgDuplicate, utils.ErrEmailVerified)
	}

	token, err := s.newToken()
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.repo.ReissueToken(ctx, sig.ID, token); err != nil {
		if errors.Is(err, utils.ErrNoRowsUpdated) {
			return nil, utils.NewConflictError(MsgDuplicate, utils.ErrEmailVerified)
		}
		return nil, utils.NewStorageError(err)
	}

	trackEvent(ctx, s.tracker, sig.ID.String(), EventPledgeResent, nil)

	if err := s.sendVerification(ctx, sig, token, true); err != nil {
		return nil, utils.NewDeliveryError(err)
	}
	return s.response(true, token), nil
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

// buildSignatory normalizes an already schema-validated request.
func (s *pledgeService) buildSignatory(req dtos.SubmitPledgeRequest) (*models.Signatory, *utils.AppError) {
	sig := &models.Signatory{
		Name:            sanitizeText(req.Name),
		Email:           utils.NormalizeEmail(req.Email),
		Organization:    sanitizeOptional(req.Organization),
		Title:           sanitizeOptional(req.Title),
		Message:         sanitizeOptional(req.Message),
		Location:        sanitizeOptional(req.Location),
		Website:         utils.NonEmpty(req.Website),
		DisplayPublicly: req.DisplayPublicly == nil || *req.DisplayPublicly,
	}
	if sig.Name == "" {
		// Markup-only names survive schema validation but not sanitizing.
		return nil, utils.NewValidationError(map[string]string{"name": "Name is required"})
	}
	if req.Social != nil {
		social := &models.SocialLinks{
			Twitter:  sanitizeOptional(req.Social.Twitter),
			LinkedIn: sanitizeOptional(req.Social.LinkedIn),
			GitHub:   sanitizeOptional(req.Social.GitHub),
		}
		if !social.IsEmpty() {
			sig.Social = social
		}
	}
	return sig, nil
}

func (s *pledgeService) checkDeliverable(ctx context.Context, email string) error {
	if s.checkEmail == nil {
		return nil
	}
	ok, err := s.checkEmail(ctx, email)
	if err != nil {
		return &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "Could not validate email address",
			Err:        fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err),
		}
	}
	if !ok {
		appErr := utils.NewValidationError(map[string]string{"email": "Email address cannot receive mail"})
		appErr.Err = utils.ErrInvalidEmail
		return appErr
	}
	return nil
}

func (s *pledgeService) sendVerification(ctx context.Context, sig *models.Signatory, token string, isResend bool) error {
	return s.mailer.SendVerification(ctx, VerificationEmail{
		ToName:   sig.Name,
		ToEmail:  sig.Email,
		Link:     VerificationLink(s.cfg.LinkBaseURL(), token),
		IsResend: isResend,
	})
}

func (s *pledgeService) response(isResend bool, token string) *dtos.SubmitPledgeResponse {
	resp := &dtos.SubmitPledgeResponse{Success: true, Message: MsgSubmitted, IsResend: isResend}
	if isResend {
		resp.Message = MsgResent
	}
	if !s.cfg.Production {
		resp.Token = token
	}
	return resp
}

func tokenError(err error) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeInternal,
		Message:    "Failed to generate verification token",
		Err:        err,
	}
}

// VerificationLink is the absolute URL embedded in the verification email.
func VerificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s%s/%s", baseURL, routes.PledgeVerifyPrefix, url.PathEscape(token))
}
