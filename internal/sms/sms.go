// Package sms sends outbound messages through the Africa's Talking
// gateway. Transport and delivery are the gateway's problem; this
// client formats the request, fires it once and reports the recipient
// status. Failures are never retried.
package sms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	liveURL    = "https://api.africastalking.com/version1/messaging"
	sandboxURL = "https://api.sandbox.africastalking.com/version1/messaging"
)

// Sender dispatches a message to one recipient.
type Sender interface {
	Send(ctx context.Context, message, recipient string) error
}

// Config configures the gateway client.
type Config struct {
	Username string // "sandbox" routes to the sandbox endpoint
	APIKey   string
	SenderID string // short code the messages are sent from
	Timeout  time.Duration
}

// Client is a REST client for the Africa's Talking messaging API.
type Client struct {
	http     *resty.Client
	username string
	senderID string
}

// NewClient creates a gateway client. The sandbox username selects the
// sandbox endpoint automatically.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Username == "" || cfg.APIKey == "" {
		return nil, errors.New("sms: username and API key required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	url := liveURL
	if cfg.Username == "sandbox" {
		url = sandboxURL
	}
	http := resty.New().
		SetBaseURL(url).
		SetTimeout(timeout).
		SetHeader("apiKey", cfg.APIKey).
		SetHeader("Accept", "application/json")
	return &Client{
		http:     http,
		username: cfg.Username,
		senderID: cfg.SenderID,
	}, nil
}

type sendResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			Number     string `json:"number"`
			Status     string `json:"status"`
			StatusCode int    `json:"statusCode"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// Send dispatches one message to one recipient and returns an error
// unless the gateway accepted it for delivery.
func (c *Client) Send(ctx context.Context, message, recipient string) error {
	var out sendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": c.username,
			"to":       recipient,
			"message":  message,
			"from":     c.senderID,
		}).
		SetResult(&out).
		Post("")
	if err != nil {
		return fmt.Errorf("sms send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms send: %s", resp.Status())
	}

	recipients := out.SMSMessageData.Recipients
	if len(recipients) == 0 {
		return fmt.Errorf("sms send: rejected: %s", out.SMSMessageData.Message)
	}
	if recipients[0].Status != "Success" {
		return fmt.Errorf("sms send to %s failed: %s", recipients[0].Number, recipients[0].Status)
	}
	return nil
}
