package line

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client represents a LINE Login API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new LINE Login client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// AuthorizeURL builds the authorization URL the user should be redirected to.
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.config.ChannelID)
	params.Set("redirect_uri", c.config.CallbackURL)
	params.Set("state", state)
	params.Set("scope", "profile openid")

	return fmt.Sprintf("%s?%s", c.config.AuthorizeURL, params.Encode())
}

// ExchangeCode trades an authorization code for an access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.config.CallbackURL)
	form.Set("client_id", c.config.ChannelID)
	form.Set("client_secret", c.config.ChannelSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.doRequest(req, ErrTokenExchange)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token response: %w", err)
	}

	return &tokenResp, nil
}

// GetProfile fetches the LINE profile for the given access token
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	body, err := c.doRequest(req, ErrProfileFetch)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile response: %w", err)
	}

	return &profile, nil
}

func (c *Client) doRequest(req *http.Request, failure error) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("%w: unexpected status code %d", failure, resp.StatusCode)
		}
		detail := errResp.ErrorDescription
		if detail == "" {
			detail = errResp.Message
		}
		return nil, fmt.Errorf("%w: %s (status %d)", failure, detail, resp.StatusCode)
	}

	return body, nil
}
