package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// HTTPClientConfig bundles the HTTP client used by a provider.
type HTTPClientConfig struct {
	Client *http.Client
}

// BreakerConfig controls when the circuit breaker opens.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker; <= 0 uses gobreaker's default.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     cfg.OpenTimeout,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: countsAsSuccess,
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	if cfg.ConsecutiveFailures > 0 {
		limit := cfg.ConsecutiveFailures
		settings.ReadyToTrip = func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= limit
		}
	}
	return gobreaker.NewCircuitBreaker(settings)
}

// countsAsSuccess keeps caller cancellations out of the breaker's failure
// counts; only upstream and transport errors trip it.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// doRequest executes one GET through the circuit breaker. There is no retry: a
// non-success status becomes a *weather.UpstreamError for op.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	op string,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			logger.Error("%s returned status %d. Body: %s", req.URL.Host, resp.StatusCode, string(body))
			return nil, &weather.UpstreamError{
				Op:         op,
				Status:     resp.Status,
				StatusCode: resp.StatusCode,
			}
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: %w: %v", op, errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}
