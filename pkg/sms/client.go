package sms

import (
	"context"
	"fmt"
	"strconv"

	"github.com/arsmn/go-smsir/smsir"
	"github.com/gbmsdev99/xclinic/config"
)

// Client provides SMS sending functionality via sms.ir.
type Client struct {
	client     *smsir.Client
	templateID string
	enabled    bool
}

// NewFromConfig creates a new SMS client from the application configuration.
// If SMS is disabled, returns a client that no-ops on all operations.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}

	client := smsir.NewClient().WithAuthentication(cfg.APIKey, cfg.SecretKey)

	return &Client{
		client:     client,
		templateID: cfg.TemplateID,
		enabled:    true,
	}, nil
}

// SendBookingConfirmation sends the post-booking SMS with the queue token
// and booking id. The configured template must define parameters named
// "uid" and "token". If SMS is disabled, this is a no-op and returns nil.
func (c *Client) SendBookingConfirmation(ctx context.Context, phoneNumber, uid string, tokenNumber int) error {
	if !c.enabled {
		return nil
	}

	if phoneNumber == "" {
		return fmt.Errorf("phone number is required")
	}
	if uid == "" {
		return fmt.Errorf("booking uid is required")
	}
	if c.templateID == "" {
		return fmt.Errorf("template ID is required")
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     phoneNumber,
		TemplateID: c.templateID,
		Parameters: []smsir.UltraFastParameter{
			{Key: "uid", Value: uid},
			{Key: "token", Value: strconv.Itoa(tokenNumber)},
		},
	}

	_, err := c.client.Verification.UltraFastSend(ctx, req)
	if err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}

	return nil
}

// IsEnabled returns whether SMS sending is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}
