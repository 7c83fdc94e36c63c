// Package grid talks to the GRID esports data platform: series discovery via
// the Central Data GraphQL API and end-state downloads via the file-download
// API. The analysis engine never touches this package; it only consumes the
// observations parsed from cached end-state files.
package grid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	centralDataURL  = "https://api-op.grid.gg/central-data/graphql"
	endStateURLTmpl = "https://api.grid.gg/file-download/end-state/grid/series/%s"

	// Conservative request pacing for hackathon-tier keys.
	requestsPerSecond = 4
	requestBurst      = 2
)

// Client is a rate-limited GRID API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient reads GRID_API_KEY from the environment.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("GRID_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GRID_API_KEY environment variable not set")
	}

	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}, nil
}

// seriesDiscoveryQuery fetches the most recent ESPORTS series for League of
// Legends (title id 3), newest first.
const seriesDiscoveryQuery = `
query GetRecentSeries($first: Int!) {
  allSeries(
    filter: { titleIds: { in: ["3"] }, types: [ESPORTS] }
    orderBy: StartTimeScheduled
    orderDirection: DESC
    first: $first
  ) {
    edges {
      node {
        id
        tournament {
          name
        }
      }
    }
  }
}
`

// Series identifies one discovered esports series.
type Series struct {
	ID         string `json:"id"`
	Tournament string `json:"tournament"`
}

// DiscoverSeries queries Central Data for the most recent series.
func (c *Client) DiscoverSeries(ctx context.Context, limit int) ([]Series, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     seriesDiscoveryQuery,
		"variables": map[string]interface{}{"first": limit},
	})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, centralDataURL, payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Data struct {
			AllSeries struct {
				Edges []struct {
					Node struct {
						ID         string `json:"id"`
						Tournament struct {
							Name string `json:"name"`
						} `json:"tournament"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"allSeries"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse discovery response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL error: %s", resp.Errors[0].Message)
	}

	series := make([]Series, 0, len(resp.Data.AllSeries.Edges))
	for _, edge := range resp.Data.AllSeries.Edges {
		if edge.Node.ID == "" {
			continue
		}
		series = append(series, Series{
			ID:         edge.Node.ID,
			Tournament: edge.Node.Tournament.Name,
		})
	}
	return series, nil
}

// DownloadEndState fetches the raw end-state JSON for a series.
func (c *Client) DownloadEndState(ctx context.Context, seriesID string) ([]byte, error) {
	url := fmt.Sprintf(endStateURLTmpl, seriesID)
	return c.do(ctx, http.MethodGet, url, nil)
}

// maxRateLimitRetries bounds 429 backoff so a sustained rate limit fails
// loudly instead of retrying forever.
const maxRateLimitRetries = 3

// do issues one rate-limited request, retrying up to maxRateLimitRetries
// times on 429 after the server-provided backoff.
func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, retry, err := c.attempt(ctx, method, url, payload)
		if err != nil {
			return nil, err
		}
		if !retry {
			return body, nil
		}
		if attempt >= maxRateLimitRetries {
			return nil, fmt.Errorf("GRID API rate limited after %d retries", maxRateLimitRetries)
		}
	}
}

func (c *Client) attempt(ctx context.Context, method, url string, payload []byte) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		return data, false, err
	case http.StatusTooManyRequests:
		wait := 10
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if v, err := strconv.Atoi(retryAfter); err == nil {
				wait = v
			}
		}
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(time.Duration(wait) * time.Second):
		}
		return nil, true, nil
	case http.StatusForbidden:
		return nil, false, fmt.Errorf("GRID API returned 403 Forbidden - check if your API key is valid")
	case http.StatusNotFound:
		return nil, false, fmt.Errorf("GRID API returned 404 Not Found - series may not exist")
	default:
		return nil, false, fmt.Errorf("GRID API returned status %d", resp.StatusCode)
	}
}
