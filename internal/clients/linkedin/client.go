package linkedin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/linkedscout/linkedscout/internal/metrics"
	"github.com/linkedscout/linkedscout/internal/ratelimit"
	log "github.com/sirupsen/logrus"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches single result pages. Every attempt, retries included,
// passes through the shared rate limiter first. Transient failures are
// retried with exponential backoff and full jitter; blocked and permanent
// failures surface immediately.
type Client struct {
	httpClient  HTTPClient
	limiter     *ratelimit.Limiter
	baseURL     string
	userAgent   string
	maxAttempts int
	backoffBase time.Duration
}

// NewHTTPClient builds the transport the fetcher expects. Redirects are not
// followed: an authwall redirect is the block signal and must be observed,
// not chased.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func NewClient(limiter *ratelimit.Limiter) *Client {
	return &Client{
		httpClient:  NewHTTPClient(30 * time.Second),
		limiter:     limiter,
		baseURL:     DefaultBaseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: 3,
		backoffBase: time.Second,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

func (c *Client) SetUserAgent(userAgent string) {
	c.userAgent = userAgent
}

func (c *Client) SetRetryPolicy(maxAttempts int, backoffBase time.Duration) {
	c.maxAttempts = maxAttempts
	c.backoffBase = backoffBase
}

// FetchPage retrieves the raw markup for one page of results.
func (c *Client) FetchPage(ctx context.Context, page PageRequest) ([]byte, error) {

	var lastErr *FetchError

	for attempt := 0; attempt < c.maxAttempts; attempt++ {

		if attempt > 0 {
			if err := c.sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
			metrics.FetchRetries.Inc()
		}

		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, err
		}

		body, fetchErr := c.doFetch(ctx, page)
		if fetchErr == nil {
			metrics.PagesFetched.Inc()
			return body, nil
		}

		if fetchErr.Kind != ErrorTransient {
			return nil, fetchErr
		}

		lastErr = fetchErr
		log.Warnf("transient fetch error at offset %d, attempt %d/%d: %v",
			page.Start, attempt+1, c.maxAttempts, fetchErr)
	}

	return nil, lastErr
}

func (c *Client) doFetch(ctx context.Context, page PageRequest) ([]byte, *FetchError) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+page.Query.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrorPermanent, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: ErrorTransient, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: ErrorTransient, Err: fmt.Errorf("error reading response body: %w", err)}
	}

	return classifyResponse(resp, body)
}

func classifyResponse(resp *http.Response, body []byte) ([]byte, *FetchError) {

	status := resp.StatusCode

	switch {
	case status == http.StatusOK:
		if isChallengeBody(body) {
			return nil, &FetchError{
				Kind: ErrorBlocked, StatusCode: status,
				Err: fmt.Errorf("challenge page served instead of results"),
			}
		}
		return body, nil

	case status == 999:
		// LinkedIn's bot-detection status.
		return nil, &FetchError{
			Kind: ErrorBlocked, StatusCode: status,
			Err: fmt.Errorf("automated access detected"),
		}

	case status >= 300 && status < 400:
		location := resp.Header.Get("Location")
		if strings.Contains(location, "authwall") || strings.Contains(location, "challenge") {
			return nil, &FetchError{
				Kind: ErrorBlocked, StatusCode: status,
				Err: fmt.Errorf("redirected to %s", location),
			}
		}
		return nil, &FetchError{
			Kind: ErrorPermanent, StatusCode: status,
			Err: fmt.Errorf("unexpected redirect to %s", location),
		}

	case status == http.StatusTooManyRequests || status >= 500:
		return nil, &FetchError{
			Kind: ErrorTransient, StatusCode: status,
			Err: fmt.Errorf("request failed with status %d", status),
		}

	default:
		return nil, &FetchError{
			Kind: ErrorPermanent, StatusCode: status,
			Err: fmt.Errorf("request failed with status %d", status),
		}
	}
}

func isChallengeBody(body []byte) bool {
	return bytes.Contains(body, []byte("authwall")) ||
		bytes.Contains(body, []byte("challenge-form"))
}

// sleepBackoff waits base * 2^(attempt-1) scaled by full jitter.
func (c *Client) sleepBackoff(ctx context.Context, attempt int) error {

	ceiling := c.backoffBase * (1 << (attempt - 1))
	delay := time.Duration(rand.Int63n(int64(ceiling) + 1))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
