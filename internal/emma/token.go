package emma

import (
	"context"
	"sync/atomic"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	"github.com/emma-community/emma-portal-proxy/pkg/metrics"
)

const (
	initialRetryBackoff = time.Second
	maxRetryBackoff     = 5 * time.Minute
	// minRefreshInterval guards against a vendor token whose lifetime is
	// shorter than the refresh margin.
	minRefreshInterval = 5 * time.Second
)

type token struct {
	accessToken string
	expiresAt   time.Time
}

// TokenStore holds the single currently-valid bearer token. The value is only
// ever whole-value replaced, so readers never observe a partial write.
type TokenStore struct {
	current             atomic.Pointer[token]
	consecutiveFailures atomic.Int32
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Token returns the current bearer token. A slightly stale token during the
// refresh window is acceptable; an absent one is not.
func (s *TokenStore) Token() (string, error) {
	t := s.current.Load()
	if t == nil {
		return "", ErrNoToken
	}
	return t.accessToken, nil
}

// Healthy reports whether the store holds a non-expired token and the refresh
// loop is not persistently failing.
func (s *TokenStore) Healthy() bool {
	t := s.current.Load()
	if t == nil {
		return false
	}
	if s.consecutiveFailures.Load() >= failureThreshold {
		return false
	}
	return time.Now().Before(t.expiresAt)
}

func (s *TokenStore) replace(accessToken string, expiresAt time.Time) {
	s.current.Store(&token{accessToken: accessToken, expiresAt: expiresAt})
	s.consecutiveFailures.Store(0)
	metrics.SetTokenRefreshFailuresMetric(0)
	metrics.SetTokenExpiryTimestampMetric(float64(expiresAt.Unix()))
}

func (s *TokenStore) recordFailure() int {
	failures := int(s.consecutiveFailures.Add(1))
	metrics.SetTokenRefreshFailuresMetric(failures)
	return failures
}

// failureThreshold is the number of consecutive refresh failures after which
// the store reports unhealthy even while the previous token is still valid.
const failureThreshold = 3

// ErrNoToken is returned before the first successful credential exchange.
var ErrNoToken = &APIError{Resource: "authentication", StatusCode: 401, Message: "no vendor token available yet"}

// TokenManager owns the background refresh loop: exchange client credentials,
// install the token into the store, schedule the next exchange shortly before
// expiry, and retry with backoff instead of dying on a failed exchange.
type TokenManager struct {
	auth         *AuthenticationClient
	store        *TokenStore
	clientID     string
	clientSecret string
	margin       time.Duration
	logger       *zap.SugaredLogger
}

func NewTokenManager(factory *ClientFactory, store *TokenStore, clientID, clientSecret string, margin time.Duration) *TokenManager {
	return &TokenManager{
		auth:         factory.Authentication(),
		store:        store,
		clientID:     clientID,
		clientSecret: clientSecret,
		margin:       margin,
		logger:       zap.S().Named("token_manager"),
	}
}

// Refresh performs one credential exchange and installs the result. It is the
// loop body of Run and is exported for callers that want the first token
// synchronously at startup.
func (m *TokenManager) Refresh(ctx context.Context) (time.Duration, error) {
	resp, err := m.auth.IssueToken(ctx, TokenRequest{ClientID: m.clientID, ClientSecret: m.clientSecret})
	if err != nil {
		failures := m.store.recordFailure()
		metrics.IncreaseTokenRefreshesTotalMetric("failure")
		m.logger.Warnw("vendor token exchange failed", "consecutive_failures", failures, "error", err)
		return 0, err
	}

	lifetime := time.Duration(resp.ExpiresIn) * time.Second
	m.store.replace(resp.AccessToken, time.Now().Add(lifetime))
	metrics.IncreaseTokenRefreshesTotalMetric("success")

	next := lifetime - m.margin
	if next < minRefreshInterval {
		next = minRefreshInterval
	}
	m.logger.Infow("vendor token refreshed", "expires_in", lifetime, "next_refresh_in", next)
	return next, nil
}

// Run drives the refresh loop until ctx is cancelled. Exactly one instance
// runs per process.
func (m *TokenManager) Run(ctx context.Context) {
	backoff := initialRetryBackoff

	for {
		wait, err := m.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait = backoff
			backoff *= 2
			if backoff > maxRetryBackoff {
				backoff = maxRetryBackoff
			}
		} else {
			backoff = initialRetryBackoff
		}

		ticker := jitterbug.New(wait, &jitterbug.Norm{Stdev: wait / 20, Mean: 0})
		select {
		case <-ctx.Done():
			ticker.Stop()
			m.logger.Info("token refresh loop stopped")
			return
		case <-ticker.C:
		}
		ticker.Stop()
	}
}
