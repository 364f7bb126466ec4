package utils

const (
	OrganizationName = "Poof"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// ProductionEnv is the ENV value that disables dev conveniences
	// (token echo, debug listing, logging mailer).
	ProductionEnv = "prod"

	VerificationTokenLength = 64
)
