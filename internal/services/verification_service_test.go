package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/pledge-service/internal/services"
	"github.com/poofware/pledge-service/internal/testhelpers"
)

func newVerificationFixture() (*testhelpers.MemorySignatoryRepository, *testhelpers.FakeTracker, *testhelpers.FakeStatsCache, services.VerificationService) {
	repo := testhelpers.NewMemorySignatoryRepository()
	tracker := &testhelpers.FakeTracker{}
	statsCache := &testhelpers.FakeStatsCache{}
	return repo, tracker, statsCache, services.NewVerificationService(repo, tracker, statsCache)
}

func TestVerify_ValidTokenFlipsRow(t *testing.T) {
	repo, tracker, statsCache, svc := newVerificationFixture()
	ctx := context.Background()
	sig := seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")

	out := svc.Verify(ctx, "tok-jane")
	assert.True(t, out.Verified)
	assert.Equal(t, "Jane Roe", out.Name)

	row, err := repo.GetByID(ctx, sig.ID)
	require.NoError(t, err)
	assert.True(t, row.Verified)
	assert.Nil(t, row.VerificationToken)

	assert.Equal(t, []string{services.EventPledgeVerified}, tracker.Names())
	assert.Equal(t, 1, statsCache.Invalidations)
}

func TestVerify_SameLinkTwiceIsIdempotent(t *testing.T) {
	repo, tracker, statsCache, svc := newVerificationFixture()
	ctx := context.Background()
	sig := seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")

	first := svc.Verify(ctx, "tok-jane")
	require.True(t, first.Verified)

	second := svc.Verify(ctx, "tok-jane")
	assert.True(t, second.Verified)
	assert.Equal(t, "Jane Roe", second.Name)

	row, err := repo.GetByID(ctx, sig.ID)
	require.NoError(t, err)
	assert.True(t, row.Verified)
	assert.Nil(t, row.VerificationToken, "a consumed token is never stored again")

	// Only the real transition is tracked and invalidates stats.
	assert.Equal(t, []string{services.EventPledgeVerified}, tracker.Names())
	assert.Equal(t, 1, statsCache.Invalidations)
}

func TestVerify_SupersededTokenStaysInvalid(t *testing.T) {
	f := newPledgeFixture(t, false)
	ctx := context.Background()
	verifier := services.NewVerificationService(f.repo, f.tracker, f.cache)

	first, err := f.svc.Submit(ctx, johnDoe())
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, johnDoe())
	require.NoError(t, err)

	assert.False(t, verifier.Verify(ctx, first.Token).Verified)
	require.True(t, verifier.Verify(ctx, second.Token).Verified)
	assert.False(t, verifier.Verify(ctx, first.Token).Verified, "never-consumed tokens do not resolve after verification")
	assert.True(t, verifier.Verify(ctx, second.Token).Verified)
}

func TestVerify_AlreadyVerifiedRowIsSuccess(t *testing.T) {
	repo, tracker, _, svc := newVerificationFixture()
	ctx := context.Background()
	sig := seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")
	// A verified row still holding a token only exists mid-race; the
	// handler must treat it as success without another update.
	sig.Verified = true
	repo.Seed(sig)

	out := svc.Verify(ctx, "tok-jane")
	assert.True(t, out.Verified)
	assert.Equal(t, "Jane Roe", out.Name)
	assert.Empty(t, tracker.Names())
}

func TestVerify_InvalidTokens(t *testing.T) {
	repo, tracker, _, svc := newVerificationFixture()
	seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")

	for _, token := range []string{"", "   ", "nonexistent", "tok-jan"} {
		t.Run(token, func(t *testing.T) {
			out := svc.Verify(context.Background(), token)
			assert.False(t, out.Verified)
			assert.Empty(t, out.Name)
		})
	}
	assert.Empty(t, tracker.Names())
}

func TestVerify_StorageFailuresAreInvalid(t *testing.T) {
	t.Run("Lookup", func(t *testing.T) {
		repo, _, _, svc := newVerificationFixture()
		seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")
		repo.Err = errors.New("db down")

		assert.False(t, svc.Verify(context.Background(), "tok-jane").Verified)
	})

	t.Run("Update", func(t *testing.T) {
		repo, tracker, _, svc := newVerificationFixture()
		ctx := context.Background()
		sig := seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")
		repo.MarkVerifiedErr = errors.New("write rejected")

		assert.False(t, svc.Verify(ctx, "tok-jane").Verified)
		assert.Empty(t, tracker.Names())

		repo.MarkVerifiedErr = nil
		row, err := repo.GetByID(ctx, sig.ID)
		require.NoError(t, err)
		assert.False(t, row.Verified)
	})
}

func TestVerify_AnalyticsFailureStillSucceeds(t *testing.T) {
	repo := testhelpers.NewMemorySignatoryRepository()
	seedUnverified(repo, "Jane Roe", "jane@example.com", "tok-jane")
	svc := services.NewVerificationService(repo, &testhelpers.FakeTracker{Err: errors.New("nope")}, &testhelpers.FakeStatsCache{})

	assert.True(t, svc.Verify(context.Background(), "tok-jane").Verified)
}

func TestSubmitThenVerify(t *testing.T) {
	f := newPledgeFixture(t, false)
	ctx := context.Background()
	verifier := services.NewVerificationService(f.repo, f.tracker, f.cache)

	resp, err := f.svc.Submit(ctx, johnDoe())
	require.NoError(t, err)
	require.True(t, verifier.Verify(ctx, resp.Token).Verified)

	_, err = f.svc.Submit(ctx, johnDoe())
	requireAppError(t, err, 409)
}
