package seeding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/repositories"
	"github.com/poofware/pledge-service/internal/utils"
)

type demoSignatory struct {
	ID           string
	Name         string
	Email        string
	Organization string
	Title        string
	Location     string
	Verified     bool
	Public       bool
}

// Fixed IDs so reseeding is idempotent.
var demoSignatories = []demoSignatory{
	{"5e1d0a6c-0001-4c1e-9f00-000000000001", "Ada Lovelace", "ada@seed.example", "Analytical Engines Ltd", "Founder", "London, UK", true, true},
	{"5e1d0a6c-0002-4c1e-9f00-000000000002", "Grace Hopper", "grace@seed.example", "US Navy", "Rear Admiral", "Arlington, VA", true, true},
	{"5e1d0a6c-0003-4c1e-9f00-000000000003", "Alan Turing", "alan@seed.example", "", "", "Manchester", true, true},
	{"5e1d0a6c-0004-4c1e-9f00-000000000004", "Margaret Hamilton", "margaret@seed.example", "MIT", "Director", "Boston, MA", false, true},
	{"5e1d0a6c-0005-4c1e-9f00-000000000005", "Linus Example", "linus@seed.example", "", "", "Helsinki, Finland", true, false},
	{"5e1d0a6c-0006-4c1e-9f00-000000000006", "Yukihiro Sample", "yukihiro@seed.example", "", "", "Tokyo", false, true},
}

// SeedDemoSignatories inserts a small fixed data set for local development.
// Rows that already exist (by email) are left alone, except that a row the
// data set marks verified is verified now if an earlier run stopped between
// the insert and the verification.
func SeedDemoSignatories(ctx context.Context, repo repositories.SignatoryRepository) (int, error) {
	created := 0
	for _, d := range demoSignatories {
		existing, err := repo.GetByEmail(ctx, d.Email)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return created, fmt.Errorf("error checking for existing signatory %s: %w", d.Email, err)
		}
		if existing != nil {
			if d.Verified && !existing.Verified {
				if err := repo.MarkVerified(ctx, existing.ID); err != nil {
					return created, fmt.Errorf("failed to verify seed signatory %s: %w", d.Email, err)
				}
				utils.Logger.Infof("Seed signatory %s was left unverified; verified it.", d.Email)
				continue
			}
			utils.Logger.Debugf("Seed signatory %s already exists; skipping.", d.Email)
			continue
		}

		token, err := utils.RandomToken(utils.VerificationTokenLength)
		if err != nil {
			return created, err
		}
		s := &models.Signatory{
			ID:                uuid.MustParse(d.ID),
			Name:              d.Name,
			Email:             d.Email,
			Organization:      utils.NonEmpty(&d.Organization),
			Title:             utils.NonEmpty(&d.Title),
			Location:          utils.NonEmpty(&d.Location),
			DisplayPublicly:   d.Public,
			VerificationToken: &token,
		}
		if _, err := repo.Upsert(ctx, s); err != nil {
			return created, fmt.Errorf("failed to insert seed signatory %s: %w", d.Email, err)
		}
		if d.Verified {
			if err := repo.MarkVerified(ctx, s.ID); err != nil {
				return created, fmt.Errorf("failed to verify seed signatory %s: %w", d.Email, err)
			}
		}
		created++
	}

	utils.Logger.Infof("Seeded %d demo signatories.", created)
	return created, nil
}
