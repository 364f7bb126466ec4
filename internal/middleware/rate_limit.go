package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/poofware/pledge-service/internal/metrics"
	"github.com/poofware/pledge-service/internal/utils"
)

const (
	maxTrackedClients = 10_000
	clientIdleTTL     = time.Hour
)

// IPRateLimiter keeps one token bucket per client IP. Idle buckets are
// evicted so the table stays bounded.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	every    rate.Limit
	burst    int
	hops     int
}

// NewIPRateLimiter allows perMinute requests per client, with bursts up to
// burst. trustedHops is passed to ClientIP.
func NewIPRateLimiter(perMinute, burst, trustedHops int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, clientIdleTTL),
		every:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		hops:     trustedHops,
	}
}

// Allow consumes one token for ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters.Get(ip)
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
	}
	// Re-adding refreshes the idle TTL.
	l.limiters.Add(ip, lim)
	l.mu.Unlock()

	return lim.Allow()
}

// Middleware rejects over-limit clients with 429.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientIP(r, l.hops)) {
			metrics.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", "60")
			utils.RespondErrorWithCode(
				w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded,
				"Too many requests, please try again later", nil, utils.ErrRateLimitExceeded,
			)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the address of the client as seen by the outermost of
// trustedHops reverse proxies. Each proxy appends its peer to
// X-Forwarded-For, so the client is the trustedHops-th entry from the right;
// anything further left was written by the client and is ignored. With no
// trusted proxies the header is ignored and the connection's remote address
// is used.
func ClientIP(r *http.Request, trustedHops int) string {
	if trustedHops > 0 {
		var hops []string
		for _, v := range r.Header.Values("X-Forwarded-For") {
			for _, part := range strings.Split(v, ",") {
				if ip := strings.TrimSpace(part); ip != "" {
					hops = append(hops, ip)
				}
			}
		}
		if len(hops) > 0 {
			return hops[max(len(hops)-trustedHops, 0)]
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
