package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/poofware/pledge-service/internal/utils"
)

// Config holds all application configuration, including secrets, flags, etc.
type Config struct {
	OrganizationName string
	AppName          string

	Env     string `env:"ENV,required"`
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppUrl  string `env:"APP_URL_FROM_ANYWHERE,required"`
	// PublicBaseURL overrides AppUrl when building verification links and
	// outcome-page redirects (e.g. the API sits behind the marketing site).
	PublicBaseURL  string   `env:"PUBLIC_BASE_URL"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	DBUrl             string `env:"DB_URL"`
	SendgridAPIKey    string `env:"SENDGRID_API_KEY"`
	SendgridFromEmail string `env:"SENDGRID_FROM_EMAIL" envDefault:"pledge@thepoofapp.com"`
	LDSDKKey          string `env:"LD_SDK_KEY"`
	RedisURL          string `env:"REDIS_URL"`

	BWSAccessToken    string `env:"BWS_ACCESS_TOKEN"`
	BWSOrganizationID string `env:"BWS_ORGANIZATION_ID"`

	ValidateEmailDeliverability bool          `env:"VALIDATE_EMAIL_DELIVERABILITY" envDefault:"false"`
	SubmitRatePerMinute         int           `env:"SUBMIT_RATE_PER_MINUTE" envDefault:"5"`
	SubmitRateBurst             int           `env:"SUBMIT_RATE_BURST" envDefault:"5"`
	StatsCacheTTL               time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`
	StatsRefreshSpec            string        `env:"STATS_REFRESH_SPEC" envDefault:"@every 1m"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// TrustedProxyHops is how many reverse proxies in front of the service
	// append to X-Forwarded-For. 0 means the header is ignored.
	TrustedProxyHops int `env:"TRUSTED_PROXY_HOPS" envDefault:"0"`

	// Production gates the token echo, the debug listing and the logging
	// mailer. Derived from Env.
	Production bool

	// Static flags fetched once from LaunchDarkly (env values when LD is off)
	LDFlag_SendgridFromEmail   string
	LDFlag_ValidateEmailWithSG bool

	ldClient *ld.LDClient
}

const (
	OrganizationName    = utils.OrganizationName
	DefaultAppName      = "pledge-service"
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides, set with -ldflags (same scheme as other services)
var (
	AppName             string
	LDServerContextKey  = "pledge-service"
	LDServerContextKind = "service"
)

// Parse reads configuration from environ (the process environment when nil)
// and validates it. It contacts no external service.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
	}
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}

	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Production = cfg.Env == utils.ProductionEnv || cfg.Env == "production"
	cfg.AppUrl = strings.TrimRight(cfg.AppUrl, "/")
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	cfg.LDFlag_SendgridFromEmail = cfg.SendgridFromEmail
	cfg.LDFlag_ValidateEmailWithSG = false

	if cfg.SubmitRatePerMinute <= 0 {
		return nil, errors.New("SUBMIT_RATE_PER_MINUTE must be positive")
	}
	if cfg.SubmitRateBurst <= 0 {
		return nil, errors.New("SUBMIT_RATE_BURST must be positive")
	}
	if cfg.TrustedProxyHops < 0 {
		return nil, errors.New("TRUSTED_PROXY_HOPS must not be negative")
	}
	return cfg, nil
}

// LoadConfig parses the environment, overlays Bitwarden secrets and
// LaunchDarkly flags when configured, and exits on any missing requirement.
func LoadConfig() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}
	utils.Logger.Info("Loading config for app: ", cfg.AppName)

	//----------------------------------------------------------------------
	// Optional BWS secrets; env values win when both are set.
	//----------------------------------------------------------------------
	if cfg.BWSAccessToken != "" {
		if err := cfg.overlayBWSSecrets(); err != nil {
			utils.Logger.WithError(err).Fatal("Fetch BWS secrets")
		}
	}

	if err := cfg.RequireRuntimeSecrets(); err != nil {
		utils.Logger.WithError(err).Fatal("Missing configuration")
	}

	//----------------------------------------------------------------------
	// Optional LaunchDarkly client & flags
	//----------------------------------------------------------------------
	if cfg.LDSDKKey != "" {
		if err := cfg.loadLDFlags(); err != nil {
			utils.Logger.WithError(err).Fatal("LaunchDarkly setup failed")
		}
	} else {
		utils.Logger.Info("LD_SDK_KEY not set; using env defaults for flags, analytics disabled")
	}

	utils.Logger.Debugf("App can be accessed at: %s (public base %s)", cfg.AppUrl, cfg.LinkBaseURL())
	utils.Logger.Infof("Loaded config for %s (%s, production=%t)", cfg.AppName, cfg.Env, cfg.Production)
	return cfg
}

// RequireRuntimeSecrets checks the values the server cannot start without.
func (c *Config) RequireRuntimeSecrets() error {
	if c.DBUrl == "" {
		return errors.New("DB_URL is missing")
	}
	if c.Production && c.SendgridAPIKey == "" {
		return errors.New("SENDGRID_API_KEY is required in production")
	}
	return nil
}

// LinkBaseURL is the origin used for verification links and redirects.
func (c *Config) LinkBaseURL() string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL
	}
	return c.AppUrl
}

// LDClient returns the LaunchDarkly client, or nil when LD is disabled.
func (c *Config) LDClient() *ld.LDClient {
	return c.ldClient
}

func (c *Config) Close() {
	if c.ldClient != nil {
		_ = c.ldClient.Close()
		c.ldClient = nil
	}
}

func (c *Config) overlayBWSSecrets() error {
	client, err := utils.NewBWSSecretsClient(c.BWSAccessToken, c.BWSOrganizationID)
	if err != nil {
		return err
	}
	defer client.Close()

	project := fmt.Sprintf("%s-%s", c.AppName, c.Env)
	utils.Logger.Debugf("Fetching app-specific secrets from BWS for %s", project)
	secrets, err := client.GetBWSSecrets(project)
	if err != nil {
		return err
	}

	for key, dst := range map[string]*string{
		"DB_URL":           &c.DBUrl,
		"SENDGRID_API_KEY": &c.SendgridAPIKey,
		"LD_SDK_KEY":       &c.LDSDKKey,
		"REDIS_URL":        &c.RedisURL,
	} {
		if *dst == "" && secrets[key] != "" {
			*dst = secrets[key]
		}
	}
	return nil
}

func (c *Config) loadLDFlags() error {
	ldClient, err := ld.MakeClient(c.LDSDKKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	if !ldClient.Initialized() {
		_ = ldClient.Close()
		return errors.New("LaunchDarkly client failed to initialize")
	}

	ctx := ServerContext()

	fromEmail, err := ldClient.StringVariation("sendgrid_from_email", ctx, c.SendgridFromEmail)
	if err != nil || fromEmail == "" {
		_ = ldClient.Close()
		return fmt.Errorf("sendgrid_from_email flag error / empty: %v", err)
	}
	utils.Logger.Debugf("sendgrid_from_email flag: %s", fromEmail)

	validateWithSG, err := ldClient.BoolVariation("validate_email_with_sendgrid", ctx, false)
	if err != nil {
		_ = ldClient.Close()
		return fmt.Errorf("validate_email_with_sendgrid flag error: %w", err)
	}
	utils.Logger.Debugf("validate_email_with_sendgrid flag: %t", validateWithSG)

	c.LDFlag_SendgridFromEmail = fromEmail
	c.LDFlag_ValidateEmailWithSG = validateWithSG
	c.ldClient = ldClient
	return nil
}

// ServerContext is the LaunchDarkly evaluation context for server-wide flags.
func ServerContext() ldcontext.Context {
	return ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)
}
