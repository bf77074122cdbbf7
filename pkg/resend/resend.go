package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// SendRequest is the payload for the Resend /emails endpoint.
type SendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// SendResponse is the response from the /emails endpoint.
type SendResponse struct {
	ID string `json:"id"`
}

// Client is a minimal Resend API client covering transactional sends.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns a client. An empty apiKey yields a disabled client whose Send
// is a no-op, so development environments run without a Resend account.
func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithBaseURL is used by tests pointing at an httptest server.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	c := New(apiKey)
	c.baseURL = baseURL
	return c
}

// Enabled reports whether the client has credentials to send.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Send delivers one email via the Resend API.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResponse, error) {
	if !c.Enabled() {
		return &SendResponse{}, nil
	}
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.client.Do(apiReq)
	if err != nil {
		return nil, fmt.Errorf("resend send: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("resend send: status %d: %s", resp.StatusCode, respBody)
	}
	var out SendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("resend send: decode response: %w", err)
	}
	return &out, nil
}
