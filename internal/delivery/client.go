package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is an HTTP Sender for the EmailJS REST API.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client for the given endpoint. The timeout bounds the
// whole request; the pipeline itself imposes none.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type sendBody struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

// Send posts the message to the delivery endpoint and reports the provider's
// HTTP status. A transport failure is returned as an error; a non-200 reply
// is returned as a Response for the caller to judge.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	body := sendBody{
		ServiceID:  req.ServiceID,
		TemplateID: req.TemplateID,
		UserID:     req.PublicKey,
		TemplateParams: map[string]any{
			"name":    req.Params.Name,
			"email":   req.Params.Email,
			"subject": req.Params.Subject,
			"message": req.Params.Message,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("delivery: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("delivery: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("delivery: send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return &Response{Status: resp.StatusCode}, nil
}
