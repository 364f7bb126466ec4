package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/poofware/pledge-service/internal/routes"
	"github.com/poofware/pledge-service/internal/services"
)

type VerificationController struct {
	svc     services.VerificationService
	baseURL string
}

// NewVerificationController redirects to outcome pages under baseURL.
func NewVerificationController(s services.VerificationService, baseURL string) *VerificationController {
	return &VerificationController{svc: s, baseURL: strings.TrimRight(baseURL, "/")}
}

// -----------------------------------------------------------------------------
// GET /api/pledge/verify/{token}
// -----------------------------------------------------------------------------
func (c *VerificationController) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	out := c.svc.Verify(r.Context(), token)
	if !out.Verified {
		http.Redirect(w, r, c.baseURL+routes.PageInvalidToken, http.StatusTemporaryRedirect)
		return
	}

	target := routes.PageVerified
	if next := r.URL.Query().Get("next"); isSameSitePath(next) {
		target = next
	}
	dest, err := url.Parse(c.baseURL + target)
	if err != nil {
		http.Redirect(w, r, c.baseURL+routes.PageVerified, http.StatusTemporaryRedirect)
		return
	}
	if out.Name != "" {
		q := dest.Query()
		q.Set("name", out.Name)
		dest.RawQuery = q.Encode()
	}
	http.Redirect(w, r, dest.String(), http.StatusTemporaryRedirect)
}

// isSameSitePath accepts "/x" but not "//host", "/\host" or absolute URLs.
func isSameSitePath(p string) bool {
	if !strings.HasPrefix(p, "/") || len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(p, "\r\n")
}
