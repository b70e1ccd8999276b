// Package search wraps the business-search provider (Yelp Fusion wire
// format): ranked business results for a term + location pair.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Result is one ranked business record. Order is provider-assigned
// relevance; Price is optional and may be empty.
type Result struct {
	Name        string  `json:"name"`
	Price       string  `json:"price,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	URL         string  `json:"url"`
}

type searchResponse struct {
	Businesses []Result `json:"businesses"`
	Total      int      `json:"total"`
}

// Client calls the business-search API.
type Client struct {
	http *resty.Client
}

// New creates a search client with a bearer token.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetAuthToken(token),
	}
}

// Search returns up to limit ranked results for term near location.
func (c *Client) Search(ctx context.Context, term, location string, limit int) ([]Result, error) {
	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"term":     term,
			"location": location,
			"limit":    fmt.Sprintf("%d", limit),
		}).
		SetResult(&out).
		Get("/v3/businesses/search")
	if err != nil {
		return nil, fmt.Errorf("querying business search: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("business search returned status %d: %s", resp.StatusCode(), resp.String())
	}

	results := out.Businesses
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
