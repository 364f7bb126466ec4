//go:build dev && integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/utils"
)

func TestSignatoryRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	email := uniqueEmail(t, "repo")

	s := &models.Signatory{
		Name:              "Repo Tester",
		Email:             email,
		Social:            &models.SocialLinks{GitHub: utils.StrPtr("repo-tester")},
		DisplayPublicly:   true,
		VerificationToken: utils.StrPtr("repo-token-1-" + email),
	}
	inserted, err := repo.Upsert(ctx, s)
	require.NoError(t, err)
	assert.True(t, inserted)
	id := s.ID

	s2 := &models.Signatory{
		Name:              "Repo Tester Again",
		Email:             email,
		DisplayPublicly:   false,
		VerificationToken: utils.StrPtr("repo-token-2-" + email),
	}
	inserted, err = repo.Upsert(ctx, s2)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, id, s2.ID)

	got, err := repo.GetByToken(ctx, "repo-token-2-"+email)
	require.NoError(t, err)
	assert.Equal(t, "Repo Tester Again", got.Name)
	assert.Nil(t, got.Social)
	assert.False(t, got.DisplayPublicly)

	require.NoError(t, repo.MarkVerified(ctx, id))
	consumed, err := repo.GetByToken(ctx, "repo-token-2-"+email)
	require.NoError(t, err)
	assert.Equal(t, id, consumed.ID)
	assert.True(t, consumed.Verified)
	_, err = repo.GetByToken(ctx, "repo-token-1-"+email)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	assert.ErrorIs(t, repo.MarkVerified(ctx, id), utils.ErrNoRowsUpdated)
	assert.ErrorIs(t, repo.ReissueToken(ctx, id, "x"), utils.ErrNoRowsUpdated)

	_, err = repo.Upsert(ctx, &models.Signatory{
		Name:              "Late",
		Email:             email,
		VerificationToken: utils.StrPtr("repo-token-3-" + email),
	})
	assert.ErrorIs(t, err, utils.ErrEmailVerified)

	final, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, final.Verified)
	assert.Nil(t, final.VerificationToken)
	assert.Equal(t, "Repo Tester Again", final.Name)

	_, err = repo.GetByToken(ctx, "does-not-exist")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
