package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/poofware/pledge-service/internal/models"
)

// SocialLinksDTO mirrors models.SocialLinks on the wire.
type SocialLinksDTO struct {
	Twitter  *string `json:"twitter,omitempty"  validate:"omitempty,max=100"`
	LinkedIn *string `json:"linkedin,omitempty" validate:"omitempty,max=200"`
	GitHub   *string `json:"github,omitempty"   validate:"omitempty,max=100"`
}

// SubmitPledgeRequest is the POST /api/pledge/submit body. Optional fields
// are pointers so "absent" and "empty" both collapse to nil after
// normalization.
type SubmitPledgeRequest struct {
	Name            string          `json:"name"             validate:"required,max=60"`
	Email           string          `json:"email"            validate:"required,email,max=254"`
	Organization    *string         `json:"organization"     validate:"omitempty,max=100"`
	Title           *string         `json:"title"            validate:"omitempty,max=100"`
	Message         *string         `json:"message"          validate:"omitempty,max=500"`
	Location        *string         `json:"location"         validate:"omitempty,max=100"`
	Website         *string         `json:"website"          validate:"omitempty,url,max=200"`
	Social          *SocialLinksDTO `json:"social"           validate:"omitempty"`
	DisplayPublicly *bool           `json:"display_publicly"`
}

type SubmitPledgeResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	IsResend bool   `json:"isResend"`
	// Token is only populated outside production.
	Token string `json:"token,omitempty"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// SignatoryPublic is the projection returned by the public listing; it
// never carries email or token.
type SignatoryPublic struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Organization    *string         `json:"organization,omitempty"`
	Title           *string         `json:"title,omitempty"`
	Message         *string         `json:"message,omitempty"`
	Location        *string         `json:"location,omitempty"`
	Website         *string         `json:"website,omitempty"`
	Social          *SocialLinksDTO `json:"social,omitempty"`
	Verified        bool            `json:"verified"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignatoryDebug is the full row, served only outside production.
type SignatoryDebug struct {
	SignatoryPublic
	Email             string    `json:"email"`
	DisplayPublicly   bool      `json:"display_publicly"`
	VerificationToken *string   `json:"verification_token"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ListSignatoriesResponse struct {
	Success bool              `json:"success"`
	Data    []SignatoryPublic `json:"data"`
}

type DebugSignatoriesResponse struct {
	Success bool             `json:"success"`
	Data    []SignatoryDebug `json:"data"`
}

func NewSignatoryPublic(s *models.Signatory) SignatoryPublic {
	out := SignatoryPublic{
		ID:           s.ID,
		Name:         s.Name,
		Organization: s.Organization,
		Title:        s.Title,
		Message:      s.Message,
		Location:     s.Location,
		Website:      s.Website,
		Verified:     s.Verified,
		CreatedAt:    s.CreatedAt,
	}
	if !s.Social.IsEmpty() {
		out.Social = &SocialLinksDTO{
			Twitter:  s.Social.Twitter,
			LinkedIn: s.Social.LinkedIn,
			GitHub:   s.Social.GitHub,
		}
	}
	return out
}

func NewSignatoryDebug(s *models.Signatory) SignatoryDebug {
	return SignatoryDebug{
		SignatoryPublic:   NewSignatoryPublic(s),
		Email:             s.Email,
		DisplayPublicly:   s.DisplayPublicly,
		VerificationToken: s.VerificationToken,
		UpdatedAt:         s.UpdatedAt,
	}
}
