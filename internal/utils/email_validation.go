package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/mail"
	"strings"

	"github.com/sendgrid/sendgrid-go"
)

// isValidEmailSyntax does RFC-5322-*ish* syntax only (no DNS)
func isValidEmailSyntax(e string) bool {
	addr, err := mail.ParseAddress(e)
	return err == nil && addr.Address == e
}

// hasMX checks that the domain publishes at least one MX record.
func hasMX(ctx context.Context, domain string) bool {
	mx, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(mx) > 0
}

// ValidateEmailDeliverability returns true if:
//
//   - the string parses as an email, AND
//   - the domain has an MX record, AND
//   - when validateWithSendGrid is set, SendGrid's deliverability verdict is
//     "valid" or "risky".
//
// Any SendGrid/network error is returned so the caller can decide.
func ValidateEmailDeliverability(ctx context.Context, apiKey, email string, validateWithSendGrid bool) (bool, error) {
	if !isValidEmailSyntax(email) {
		return false, nil
	}

	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return false, nil
	}
	if !hasMX(ctx, parts[1]) {
		return false, nil
	}

	if !validateWithSendGrid {
		return true, nil
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return false, err
	}
	req := sendgrid.GetRequest(apiKey, "/v3/validations/email", "https://api.sendgrid.com")
	req.Method = "POST"
	req.Body = body

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case 200:
		var sg struct {
			Result struct {
				Verdict string `json:"verdict"`
			} `json:"result"`
		}
		if jsonErr := json.Unmarshal([]byte(resp.Body), &sg); jsonErr != nil {
			return false, fmt.Errorf("sendgrid JSON decode: %w", jsonErr)
		}
		verdict := strings.ToLower(sg.Result.Verdict)
		return verdict == "valid" || verdict == "risky", nil
	case 400: // SendGrid treats syntactically bad addresses as 400
		return false, nil
	default:
		return false, fmt.Errorf("sendgrid validation failed: status %d – %s", resp.StatusCode, resp.Body)
	}
}
