package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/nutriflow/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type testRateLimiter struct {
	allowed    int
	retryAfter time.Duration
	err        error
	keys       []string
	limits     []redis_rate.Limit
}

func (l *testRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	l.keys = append(l.keys, key)
	l.limits = append(l.limits, limit)
	if l.err != nil {
		return nil, l.err
	}
	return &redis_rate.Result{
		Limit:      limit,
		Allowed:    l.allowed,
		RetryAfter: l.retryAfter,
	}, nil
}

func TestRateLimit(t *testing.T) {
	testCases := []struct {
		name             string
		limiter          *testRateLimiter
		expectedStatus   int
		expectNext       bool
		expectRetryAfter string
		expectLimited    float64
	}{
		{
			name:           "Allowed",
			limiter:        &testRateLimiter{allowed: 1},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:             "Limited",
			limiter:          &testRateLimiter{allowed: 0, retryAfter: 1500 * time.Millisecond},
			expectedStatus:   http.StatusTooManyRequests,
			expectRetryAfter: "2",
			expectLimited:    1,
		},
		{
			name:           "LimiterError",
			limiter:        &testRateLimiter{err: errors.New("redis down")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metricsManager := metrics.NewTestManager()
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			handler := RateLimit(tc.limiter, metricsManager, "plan-diet", 5)(next)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/session/diet", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNext, nextCalled)
			assert.Equal(t, tc.expectRetryAfter, rr.Header().Get("Retry-After"))
			assert.Equal(t, tc.expectLimited, testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
			assert.Equal(t, []string{"plan-diet"}, tc.limiter.keys)
			assert.Equal(t, redis_rate.PerMinute(5), tc.limiter.limits[0])
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	limiter := &testRateLimiter{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	handler := RateLimit(limiter, nil, "plan-workout", 0)(next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/session/timing/confirm", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Empty(t, limiter.keys)
}
