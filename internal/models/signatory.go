package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks holds optional handles; stored as JSONB.
type SocialLinks struct {
	Twitter  *string `json:"twitter,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
}

// IsEmpty reports whether no handle is set.
func (s *SocialLinks) IsEmpty() bool {
	return s == nil || (s.Twitter == nil && s.LinkedIn == nil && s.GitHub == nil)
}

// Signatory for the signatories table. VerificationToken is non-nil iff
// Verified is false.
type Signatory struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Organization      *string
	Title             *string
	Message           *string
	Location          *string
	Website           *string
	Social            *SocialLinks
	DisplayPublicly   bool
	Verified          bool
	VerificationToken *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasOrganization reports whether the signatory signed on behalf of an
// organization.
func (s *Signatory) HasOrganization() bool {
	return s.Organization != nil && *s.Organization != ""
}
