package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

// Client sends transactional email through the Brevo HTTP API v3.
type Client struct {
	apiKey     string
	fromEmail  string
	fromName   string
	endpoint   string
	httpClient *http.Client
	configured bool
}

func NewClient(apiKey, fromEmail, fromName string) *Client {
	c := &Client{
		endpoint:   brevoAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	if apiKey != "" && fromEmail != "" {
		c.apiKey = apiKey
		c.fromEmail = fromEmail
		c.fromName = fromName
		c.configured = true
	}
	return c
}

func (c *Client) IsConfigured() bool {
	return c.configured
}

type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HtmlContent string              `json:"htmlContent"`
}

func (c *Client) SendEmail(ctx context.Context, toEmail, subject, html string) error {
	if !c.configured {
		return fmt.Errorf("mail client not configured, email to %s skipped", toEmail)
	}
	if toEmail == "" || subject == "" || html == "" {
		return errors.New("toEmail, subject, and html content cannot be empty")
	}

	reqBody := sendEmailReq{
		Sender:      map[string]string{"email": c.fromEmail, "name": c.fromName},
		To:          []map[string]string{{"email": toEmail}},
		Subject:     subject,
		HtmlContent: html,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal email request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mail send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail API error: status %d", resp.StatusCode)
	}
	return nil
}
