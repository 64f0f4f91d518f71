package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	session "github.com/Hot00Sauce/go-session"
)

const (
	signupPath = "/signup"
	tokenPath  = "/token"
	logoutPath = "/logout"
)

// Config holds the connection settings for the identity service.
type Config struct {
	// BaseURL is the service address, e.g. https://auth.example.com.
	BaseURL string

	// APIKey is the public access key sent with every request.
	APIKey string

	HTTPClient *http.Client
}

// Client implements session.Provider against a GoTrue-style API.
type Client struct {
	config     Config
	httpClient *http.Client
}

var _ session.Provider = (*Client)(nil)

// New creates a client. Both the service address and the access key
// are required; there is nothing sensible to default them to.
func New(cfg Config) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gotrue: service URL is required")
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gotrue: access key is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		config:     cfg,
		httpClient: client,
	}, nil
}

// Register implements session.Provider.
func (c *Client) Register(ctx context.Context, email, password string) (*session.Credentials, error) {
	return c.authRequest(ctx, "register", signupPath, email, password)
}

// Authenticate implements session.Provider.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*session.Credentials, error) {
	return c.authRequest(ctx, "authenticate", tokenPath+"?grant_type=password", email, password)
}

// Terminate implements session.Provider. It revokes the remote session
// belonging to accessToken.
func (c *Client) Terminate(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, logoutPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue: logout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return rejectionFromResponse("terminate", resp)
	}

	return nil
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse covers both shapes the service answers with: a session
// envelope (token + nested user) or a bare user record when signup
// requires confirmation before a session exists.
type authResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        userResponse `json:"user"`

	userResponse
}

type userResponse struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Role     string         `json:"role"`
	Metadata map[string]any `json:"user_metadata"`
}

func (c *Client) authRequest(ctx context.Context, operation, path, email, password string) (*session.Credentials, error) {
	req, err := c.newRequest(ctx, path, credentialsPayload{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotrue: %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejectionFromResponse(operation, resp)
	}

	body := &authResponse{}
	if err := json.NewDecoder(resp.Body).Decode(body); err != nil {
		return nil, fmt.Errorf("gotrue: unable to decode %s response: %w", operation, err)
	}

	user := body.User
	if user.ID == "" {
		user = body.userResponse
	}

	return &session.Credentials{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
		ExpiresIn:   body.ExpiresIn,
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		Metadata:    user.Metadata,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("gotrue: unable to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("gotrue: unable to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.config.APIKey)

	return req, nil
}

// errorResponse covers the error envelopes the service uses across
// versions.
type errorResponse struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func rejectionFromResponse(operation string, resp *http.Response) error {
	rej := &session.RejectionError{
		Operation: operation,
		Status:    resp.StatusCode,
	}

	raw, err := io.ReadAll(resp.Body)
	if err == nil && len(raw) > 0 {
		decoded := errorResponse{}
		if json.Unmarshal(raw, &decoded) == nil {
			for _, msg := range []string{decoded.ErrorDescription, decoded.Message, decoded.Error} {
				if msg != "" {
					rej.Message = msg
					break
				}
			}
		}
	}

	if rej.Message == "" {
		rej.Message = fmt.Sprintf("identity service rejected the request (status %d)", resp.StatusCode)
	}

	return rej
}
