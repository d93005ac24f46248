package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"btc-mining-sim/internal/model"
)

// DefaultCoinGeckoBaseURL is the public CoinGecko v3 API.
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// PriceCacheTTL bounds how long CoinGecko responses are reused.
const PriceCacheTTL = 10 * time.Minute

// CoinGeckoClient fetches BTC/USD prices from the CoinGecko API.
type CoinGeckoClient struct {
	BaseURL string
	Client  *http.Client

	spot    *Cache[float64]
	history *Cache[[]model.PricePoint]
}

// NewCoinGeckoClient creates a client with a 10 minute response cache.
// If baseURL is empty, COINGECKO_BASE_URL or the public endpoint is used.
func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = os.Getenv("COINGECKO_BASE_URL")
	}
	if baseURL == "" {
		baseURL = DefaultCoinGeckoBaseURL
	}
	return &CoinGeckoClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
		spot:    NewCache[float64](PriceCacheTTL),
		history: NewCache[[]model.PricePoint](PriceCacheTTL),
	}
}

// Close stops the cache sweepers.
func (c *CoinGeckoClient) Close() {
	c.spot.Close()
	c.history.Close()
}

// APIError represents a non-200 response from an upstream API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *APIError) Error() string {
	return e.Message
}

type simplePriceResponse map[string]map[string]float64

// SpotPrice returns the current BTC price in USD.
func (c *CoinGeckoClient) SpotPrice(ctx context.Context) (float64, error) {
	const key = "spot:bitcoin:usd"
	if cached, ok := c.spot.Get(key); ok {
		log.Printf("[CoinGecko] Cache hit: spot price %.2f", cached)
		return cached, nil
	}

	q := url.Values{}
	q.Set("ids", "bitcoin")
	q.Set("vs_currencies", "usd")

	var body simplePriceResponse
	if err := c.get(ctx, "/simple/price", q, &body); err != nil {
		return 0, err
	}
	price, ok := body["bitcoin"]["usd"]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("coingecko response has no bitcoin usd price")
	}
	c.spot.Set(key, price)
	return price, nil
}

// PriceHistory returns daily BTC/USD closes for the last days days.
func (c *CoinGeckoClient) PriceHistory(ctx context.Context, days int) ([]model.PricePoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be > 0")
	}
	key := "history:bitcoin:usd:" + strconv.Itoa(days)
	if cached, ok := c.history.Get(key); ok {
		log.Printf("[CoinGecko] Cache hit: %d price points (days=%d)", len(cached), days)
		return append([]model.PricePoint(nil), cached...), nil
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))
	q.Set("interval", "daily")

	var chart model.CoinGeckoMarketChart
	if err := c.get(ctx, "/coins/bitcoin/market_chart", q, &chart); err != nil {
		return nil, err
	}
	points := chart.Points()
	c.history.Set(key, points)
	return append([]model.PricePoint(nil), points...), nil
}

func (c *CoinGeckoClient) get(ctx context.Context, path string, q url.Values, out any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u.RawQuery = q.Encode()

	log.Printf("[CoinGecko] Request: GET %s?%s", u.Path, u.RawQuery)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[CoinGecko] Request failed: %v (duration: %v)", err, duration)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[CoinGecko] Response: %d (duration: %v, path=%s)", resp.StatusCode, duration, u.Path)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		log.Printf("[CoinGecko] Error: 429 Rate Limit Exceeded - Retry after: %s", retryAfter)
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Price API rejected the request",
		}
	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
