package services

import (
	"context"
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/poofware/pledge-service/internal/metrics"
	"github.com/poofware/pledge-service/internal/utils"
)

const (
	EventPledgeSubmitted = "pledge_submitted"
	EventPledgeVerified  = "pledge_verified"
	EventPledgeResent    = "pledge_verification_resent"

	signatoryContextKind = "signatory"
)

// Tracker records product-analytics events.
type Tracker interface {
	Track(ctx context.Context, distinctID, event string, props map[string]string) error
}

// NewTracker sends custom events through LaunchDarkly when a client is
// available; otherwise events are dropped.
func NewTracker(client *ld.LDClient) Tracker {
	if client == nil {
		return NoopTracker{}
	}
	return &ldTracker{client: client}
}

type ldTracker struct {
	client *ld.LDClient
}

func (t *ldTracker) Track(_ context.Context, distinctID, event string, props map[string]string) error {
	data := ldvalue.ObjectBuild()
	for k, v := range props {
		data.Set(k, ldvalue.String(v))
	}
	ldCtx := ldcontext.NewWithKind(signatoryContextKind, distinctID)
	return t.client.TrackData(event, ldCtx, data.Build())
}

type NoopTracker struct{}

func (NoopTracker) Track(context.Context, string, string, map[string]string) error { return nil }

// bestEffort runs a side effect whose failure must never reach the caller.
// Errors and panics are logged and counted, then dropped.
func bestEffort(effect string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.BestEffortFailuresTotal.WithLabelValues(effect).Inc()
			utils.Logger.WithField("effect", effect).Errorf("best-effort side effect panicked: %v", r)
		}
	}()
	if err := fn(); err != nil {
		metrics.BestEffortFailuresTotal.WithLabelValues(effect).Inc()
		utils.Logger.WithError(err).WithField("effect", effect).Warn("best-effort side effect failed")
	}
}

func trackEvent(ctx context.Context, t Tracker, distinctID, event string, props map[string]string) {
	bestEffort(event, func() error {
		if err := t.Track(ctx, distinctID, event, props); err != nil {
			return fmt.Errorf("track %s: %w", event, err)
		}
		return nil
	})
}
