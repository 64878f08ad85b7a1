package complysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the service without a session. Use Login or
// AcceptInvitation to obtain a Session for the authenticated surface.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Health checks liveness.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out)
	return out, err
}

// Ready checks readiness, including the database connection.
func (c *Client) Ready(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out)
	return out, err
}

// Bootstrap creates the first organisation and admin. It only ever succeeds
// once per deployment.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", "", req, &out)
	return out, err
}

// Login exchanges credentials for a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, member: out.Member}, nil
}

// ValidateInvitation checks whether an invitation token is redeemable.
func (c *Client) ValidateInvitation(ctx context.Context, token string) (ValidateInvitationResponse, error) {
	var out ValidateInvitationResponse
	err := c.do(ctx, http.MethodGet, "/v1/invitations/validate?token="+url.QueryEscape(token), "", nil, &out)
	return out, err
}

// AcceptInvitation redeems an invitation and returns a logged-in Session for
// the new member.
func (c *Client) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*Session, error) {
	var out AcceptInvitationResponse
	err := c.do(ctx, http.MethodPost, "/v1/invitations/accept", "", req, &out)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, member: out.Member}, nil
}

// do performs a JSON request. A non-2xx status decodes into APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("complysdk: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
