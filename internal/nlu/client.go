// Package nlu wraps the small-talk NLU service (api.ai v1 wire format):
// free text in, a fulfillment speech string out. Conversational context
// lives server-side, keyed by session id.
package nlu

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type queryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId"`
	Lang      string `json:"lang"`
}

type queryResponse struct {
	Result struct {
		Action      string            `json:"action"`
		Parameters  map[string]string `json:"parameters"`
		Fulfillment struct {
			Speech string `json:"speech"`
		} `json:"fulfillment"`
	} `json:"result"`
}

// Client calls the NLU service.
type Client struct {
	http *resty.Client
}

// New creates an NLU client with a bearer token.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetAuthToken(token),
	}
}

// SmallTalk sends an utterance under the given session id and returns the
// service's speech reply. Session ids are derived per sender so users do
// not share conversational context.
func (c *Client) SmallTalk(ctx context.Context, sessionID, utterance string) (string, error) {
	var out queryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("v", "20150910").
		SetHeader("Content-Type", "application/json").
		SetBody(queryRequest{
			Query:     utterance,
			SessionID: sessionID,
			Lang:      "en",
		}).
		SetResult(&out).
		Post("/v1/query")
	if err != nil {
		return "", fmt.Errorf("querying NLU service: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("NLU service returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return out.Result.Fulfillment.Speech, nil
}
