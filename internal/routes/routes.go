package routes

const (
	// Health
	Health  = "/health"
	Metrics = "/metrics"

	// Pledge lifecycle
	PledgeSubmit       = "/api/pledge/submit"
	PledgeResend       = "/api/pledge/resend"
	PledgeVerifyPrefix = "/api/pledge/verify"
	PledgeVerify       = PledgeVerifyPrefix + "/{token}"

	// Public readers
	Signatories = "/api/signatories"
	Stats       = "/api/stats"

	// Non-production only
	DebugSignatories = "/api/debug/signatories"

	// Outcome pages served by the front end
	PageVerified     = "/pledge/verified"
	PageInvalidToken = "/pledge/invalid-token"
)
