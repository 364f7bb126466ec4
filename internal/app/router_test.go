package app_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/pledge-service/internal/app"
	"github.com/poofware/pledge-service/internal/config"
	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/models"
	"github.com/poofware/pledge-service/internal/testhelpers"
	"github.com/poofware/pledge-service/internal/utils"
)

const testBaseURL = "https://pledge.example.org"

type server struct {
	repo    *testhelpers.MemorySignatoryRepository
	mailer  *testhelpers.FakeMailer
	handler http.Handler
}

func newServer(t *testing.T, production bool) *server {
	t.Helper()
	cfg := &config.Config{
		OrganizationName:         utils.OrganizationName,
		Env:                      "dev",
		AppUrl:                   testBaseURL,
		Production:               production,
		SubmitRatePerMinute:      1000,
		SubmitRateBurst:          1000,
		LDFlag_SendgridFromEmail: "pledge@example.org",
	}
	if production {
		cfg.Env = utils.ProductionEnv
	}
	s := &server{
		repo:   testhelpers.NewMemorySignatoryRepository(),
		mailer: &testhelpers.FakeMailer{},
	}
	a := app.NewAppWithDeps(cfg, s.repo, s.mailer, &testhelpers.FakeTracker{}, &testhelpers.FakeStatsCache{})
	s.handler = a.Router()
	return s
}

func (s *server) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func submitJohn(t *testing.T, s *server) dtos.SubmitPledgeResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/pledge/submit", map[string]any{
		"name":             "John Doe",
		"email":            "john@example.com",
		"display_publicly": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[dtos.SubmitPledgeResponse](t, rec)
}

// ------------------------------------------------------------------
// Submit
// ------------------------------------------------------------------

func TestSubmitEndpoint_HappyPath(t *testing.T) {
	s := newServer(t, false)

	resp := submitJohn(t, s)
	assert.True(t, resp.Success)
	assert.False(t, resp.IsResend)
	assert.Contains(t, resp.Message, "check your email")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, s.mailer.Count())
}

func TestSubmitEndpoint_ResendThenConflict(t *testing.T) {
	s := newServer(t, false)

	first := submitJohn(t, s)
	second := submitJohn(t, s)
	assert.True(t, second.IsResend)
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 1, s.repo.Len())

	s.repo.VerifyEmailNow("john@example.com")
	rec := s.do(t, http.MethodPost, "/api/pledge/submit", map[string]any{
		"name": "John Doe", "email": "john@example.com",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode[utils.ErrorResponse](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, utils.ErrCodeConflict, body.Code)
}

func TestSubmitEndpoint_ValidationErrors(t *testing.T) {
	s := newServer(t, false)

	cases := []struct {
		name   string
		body   any
		fields []string
	}{
		{"MissingName", map[string]any{"email": "a@b.co"}, []string{"name"}},
		{"LongName", map[string]any{"name": strings.Repeat("x", 61), "email": "a@b.co"}, []string{"name"}},
		{"BadEmail", map[string]any{"name": "A", "email": "not-an-email"}, []string{"email"}},
		{"BadWebsite", map[string]any{"name": "A", "email": "a@b.co", "website": "nope"}, []string{"website"}},
		{"LongMessage", map[string]any{"name": "A", "email": "a@b.co", "message": strings.Repeat("m", 501)}, []string{"message"}},
		{"Several", map[string]any{"name": "", "email": ""}, []string{"name", "email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/pledge/submit", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body struct {
				Code    string            `json:"code"`
				Details map[string]string `json:"details"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, utils.ErrCodeValidation, body.Code)
			for _, f := range tc.fields {
				assert.Contains(t, body.Details, f)
			}
		})
	}
	assert.Zero(t, s.repo.Len())
	assert.Zero(t, s.mailer.Count())
}

func TestSubmitEndpoint_MalformedJSON(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, http.MethodPost, "/api/pledge/submit", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decode[utils.ErrorResponse](t, rec).Code)
}

func TestSubmitEndpoint_EmailFailureIs500(t *testing.T) {
	s := newServer(t, false)
	s.mailer.Err = errors.New("sendgrid 401")

	rec := s.do(t, http.MethodPost, "/api/pledge/submit", map[string]any{
		"name": "John Doe", "email": "john@example.com",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[utils.ErrorResponse](t, rec).Message, "sendgrid 401")
	assert.Equal(t, 1, s.repo.Len())
}

func TestSubmitEndpoint_ProductionHidesToken(t *testing.T) {
	s := newServer(t, true)

	resp := submitJohn(t, s)
	assert.Empty(t, resp.Token)
	assert.Equal(t, 1, s.mailer.Count())
}

// ------------------------------------------------------------------
// Verify
// ------------------------------------------------------------------

func TestVerifyEndpoint(t *testing.T) {
	s := newServer(t, false)
	token := submitJohn(t, s).Token

	rec := s.do(t, http.MethodGet, "/api/pledge/verify/"+token, nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/pledge/verified", loc.Path)
	assert.Equal(t, "John Doe", loc.Query().Get("name"))
	assert.Equal(t, "pledge.example.org", loc.Host)

	row, err := s.repo.GetByEmail(t.Context(), "john@example.com")
	require.NoError(t, err)
	assert.True(t, row.Verified)
	assert.Nil(t, row.VerificationToken)

	// Clicking the same link again still lands on the success page.
	rec = s.do(t, http.MethodGet, "/api/pledge/verify/"+token, nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	again, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/pledge/verified", again.Path)
	assert.Equal(t, "John Doe", again.Query().Get("name"))
}

func TestVerifyEndpoint_AlreadyVerifiedRow(t *testing.T) {
	s := newServer(t, false)
	s.repo.Seed(&models.Signatory{
		Name:              "Jane",
		Email:             "jane@example.com",
		Verified:          true,
		VerificationToken: utils.StrPtr("stale-token"),
	})

	rec := s.do(t, http.MethodGet, "/api/pledge/verify/stale-token", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/pledge/verified")
}

func TestVerifyEndpoint_Invalid(t *testing.T) {
	s := newServer(t, false)
	submitJohn(t, s)

	for _, path := range []string{
		"/api/pledge/verify/nonexistent",
		"/api/pledge/verify/",
		"/api/pledge/verify",
	} {
		t.Run(path, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, path, nil)
			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			assert.Equal(t, testBaseURL+"/pledge/invalid-token", rec.Header().Get("Location"))
		})
	}
}

func TestVerifyEndpoint_Next(t *testing.T) {
	cases := map[string]string{
		"/welcome?ref=mail":    "/welcome",
		"//evil.example.com/x": "/pledge/verified",
		"https://evil.example": "/pledge/verified",
		"/\\evil.example.com":  "/pledge/verified",
	}
	for next, wantPath := range cases {
		t.Run(next, func(t *testing.T) {
			s := newServer(t, false)
			token := submitJohn(t, s).Token

			rec := s.do(t, http.MethodGet, "/api/pledge/verify/"+token+"?next="+url.QueryEscape(next), nil)
			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			loc, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, "pledge.example.org", loc.Host)
			assert.Equal(t, wantPath, loc.Path)
			assert.Equal(t, "John Doe", loc.Query().Get("name"))
		})
	}
}

// ------------------------------------------------------------------
// Resend
// ------------------------------------------------------------------

func TestResendEndpoint(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, http.MethodPost, "/api/pledge/resend", map[string]string{"email": "john@example.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	first := submitJohn(t, s)
	rec = s.do(t, http.MethodPost, "/api/pledge/resend", map[string]string{"email": "john@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dtos.SubmitPledgeResponse](t, rec)
	assert.True(t, resp.IsResend)
	assert.NotEqual(t, first.Token, resp.Token)

	rec = s.do(t, http.MethodPost, "/api/pledge/resend", map[string]string{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ------------------------------------------------------------------
// Readers
// ------------------------------------------------------------------

func TestListingAndStatsEndpoints(t *testing.T) {
	s := newServer(t, false)

	for i, body := range []map[string]any{
		{"name": "A", "email": "a@example.com", "organization": "Acme", "location": "Berlin"},
		{"name": "B", "email": "b@example.com", "organization": "Globex", "location": "Austin, TX"},
		{"name": "C", "email": "c@example.com", "organization": "Initech", "display_publicly": false},
		{"name": "D", "email": "d@example.com"},
		{"name": "E", "email": "e@example.com", "location": "nowhere in particular"},
	} {
		rec := s.do(t, http.MethodPost, "/api/pledge/submit", body)
		require.Equal(t, http.StatusOK, rec.Code, "submission %d: %s", i, rec.Body.String())
	}

	rec := s.do(t, http.MethodGet, "/api/signatories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[dtos.ListSignatoriesResponse](t, rec)
	assert.True(t, list.Success)
	assert.Len(t, list.Data, 4)
	assert.NotContains(t, rec.Body.String(), "a@example.com")
	assert.NotContains(t, rec.Body.String(), "verification_token")

	rec = s.do(t, http.MethodGet, "/api/signatories?limit=2&offset=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dtos.ListSignatoriesResponse](t, rec).Data, 2)

	rec = s.do(t, http.MethodGet, "/api/signatories?limit=ten", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[dtos.StatsResponse](t, rec).Data
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Organizations)
	assert.Equal(t, 2, stats.Individuals)
	assert.Equal(t, 0, stats.Verified)
	assert.Equal(t, 5, stats.RecentSignatures)
	assert.Equal(t, 2, stats.Countries)
}

func TestReaders_StorageErrors(t *testing.T) {
	s := newServer(t, false)
	s.repo.Err = errors.New("db down")

	for _, path := range []string{"/api/signatories", "/api/stats", "/api/debug/signatories"} {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
	}
	assert.Equal(t, http.StatusServiceUnavailable, s.do(t, http.MethodGet, "/health", nil).Code)
}

func TestDebugEndpoint_OnlyOutsideProduction(t *testing.T) {
	dev := newServer(t, false)
	submitJohn(t, dev)
	rec := dev.do(t, http.MethodGet, "/api/debug/signatories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[dtos.DebugSignatoriesResponse](t, rec)
	require.Len(t, all.Data, 1)
	assert.Equal(t, "john@example.com", all.Data[0].Email)
	assert.NotNil(t, all.Data[0].VerificationToken)

	prod := newServer(t, true)
	assert.Equal(t, http.StatusNotFound, prod.do(t, http.MethodGet, "/api/debug/signatories", nil).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decode[dtos.HealthCheckResponse](t, rec).Status)

	submitJohn(t, s)
	rec = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pledge_submit_requests_total")
}

func TestSubmitEndpoint_RateLimited(t *testing.T) {
	cfg := &config.Config{
		OrganizationName:    utils.OrganizationName,
		AppUrl:              testBaseURL,
		SubmitRatePerMinute: 1,
		SubmitRateBurst:     2,
	}
	a := app.NewAppWithDeps(cfg, testhelpers.NewMemorySignatoryRepository(), &testhelpers.FakeMailer{},
		&testhelpers.FakeTracker{}, &testhelpers.FakeStatsCache{})
	h := a.Router()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/pledge/submit", strings.NewReader(`{"email":"x"}`))
		req.RemoteAddr = "203.0.113.9:4567"
		// A client-chosen header value must not give it a fresh bucket.
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}
