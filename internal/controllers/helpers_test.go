package controllers

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/pledge-service/internal/dtos"
	"github.com/poofware/pledge-service/internal/utils"
)

func TestFieldErrorsUseJSONNames(t *testing.T) {
	req := dtos.SubmitPledgeRequest{
		Name:    "",
		Email:   "nope",
		Website: utils.StrPtr("not a url"),
		Social:  &dtos.SocialLinksDTO{GitHub: utils.StrPtr(string(make([]byte, 101)))},
	}
	err := validate.Struct(req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	got := fieldErrors(verrs)
	assert.Equal(t, "This field is required", got["name"])
	assert.Equal(t, "Must be a valid email address", got["email"])
	assert.Equal(t, "Must be a valid URL", got["website"])
	assert.Equal(t, "Must be at most 100 characters", got["social.github"])
}

func TestIsSameSitePath(t *testing.T) {
	for p, want := range map[string]bool{
		"/":                 true,
		"/thanks":           true,
		"/thanks?x=1":       true,
		"":                  false,
		"thanks":            false,
		"//evil.example":    false,
		"/\\evil.example":   false,
		"https://evil.test": false,
		"/a\r\nSet-Cookie:": false,
	} {
		assert.Equal(t, want, isSameSitePath(p), p)
	}
}
