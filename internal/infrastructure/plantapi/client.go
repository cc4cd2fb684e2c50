package plantapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plantshop/backend/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a catalog response is read into memory
const maxBodyBytes = 8 << 20

// ClientConfig holds the settings for the catalog API client
type ClientConfig struct {
	BaseURL string
	Path    string

	// Timeout bounds one HTTP attempt, so a hung attempt is retried
	// while the caller's deadline still allows it.
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	Burst             int

	// BreakerFailures consecutive failed fetches open the circuit for
	// BreakerCooldown. 0 disables the breaker.
	BreakerFailures int
	BreakerCooldown time.Duration
}

// Client fetches the plant catalog from the remote API
type Client struct {
	httpClient  *http.Client
	endpoint    string
	maxRetries  int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	backoff     func(attempt int) time.Duration
	breaker     *gobreaker.CircuitBreaker[[]domain.PlantRecord]
}

// NewClient creates a new catalog API client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	client := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:    strings.TrimRight(cfg.BaseURL, "/") + cfg.Path,
		maxRetries:  maxRetries,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger.Named("plantapi"),
		backoff:     exponentialBackoff,
	}

	if cfg.BreakerFailures > 0 {
		client.breaker = newBreaker(cfg.BreakerFailures, cfg.BreakerCooldown, client.logger)
	}

	return client
}

func newBreaker(failures int, cooldown time.Duration, logger *zap.Logger) *gobreaker.CircuitBreaker[[]domain.PlantRecord] {
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker[[]domain.PlantRecord](gobreaker.Settings{
		Name:        "plantapi",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		// a caller giving up says nothing about the upstream
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// exponentialBackoff returns the wait before the next attempt: 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrCatalogFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PlantShop/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogFetchFailure, err)
	}

	return resp, nil
}

// FetchPlants downloads the full catalog. Network errors, 429 and 5xx
// responses are retried; other failures return immediately. While the
// circuit is open calls fail fast without touching the network.
func (c *Client) FetchPlants(ctx context.Context) ([]domain.PlantRecord, error) {
	if c.breaker == nil {
		return c.fetchWithRetry(ctx)
	}

	plants, err := c.breaker.Execute(func() ([]domain.PlantRecord, error) {
		return c.fetchWithRetry(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogFetchFailure, err)
	}
	return plants, err
}

func (c *Client) fetchWithRetry(ctx context.Context) ([]domain.PlantRecord, error) {
	c.logger.Debug("fetching catalog", zap.String("endpoint", c.endpoint))

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, c.backoff(attempt-1)); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrCatalogFetchFailure, err)
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %w", domain.ErrCatalogFetchFailure, err)
		}

		resp, err := c.doRequest(ctx)
		if err != nil {
			c.logger.Warn("catalog request failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		body, err := readLimitedBody(resp.Body, maxBodyBytes)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCatalogFetchFailure, err)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Warn("catalog API error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.String("body", truncate(string(body), 256)))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogFetchFailure, resp.StatusCode)
			if !retryableStatus(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		plants, err := DecodeCatalog(body)
		if err != nil {
			c.logger.Warn("catalog decode failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %w: %v", domain.ErrCatalogFetchFailure, domain.ErrCatalogDecode, err)
		}

		c.logger.Info("catalog fetched",
			zap.Int("plants", len(plants)),
			zap.Int("attempt", attempt))
		return plants, nil
	}

	c.logger.Error("all catalog fetch attempts failed",
		zap.Int("attempts", c.maxRetries),
		zap.Error(lastErr))
	return nil, lastErr
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
