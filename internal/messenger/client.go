package messenger

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// sendRequest is the Send API envelope.
type sendRequest struct {
	Recipient principal `json:"recipient"`
	Message   Payload   `json:"message"`
}

// Client talks to the platform's Send API.
type Client struct {
	http        *resty.Client
	accessToken string
}

// NewClient creates a Send API client. baseURL is the Graph API root
// (e.g. https://graph.facebook.com/v2.6).
func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		accessToken: accessToken,
	}
}

// Send posts one message to the recipient. It performs exactly one POST;
// retries are the dispatcher's concern.
func (c *Client) Send(ctx context.Context, recipientID string, payload Payload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", c.accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(sendRequest{
			Recipient: principal{ID: recipientID},
			Message:   payload,
		}).
		Post("/me/messages")
	if err != nil {
		return fmt.Errorf("posting to send API: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("send API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
