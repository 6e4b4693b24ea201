package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

const (
	// DefaultBaseURL is the platform's fixed API root. Only this one API
	// version is spoken.
	DefaultBaseURL = "https://api.vrchat.cloud/api/1"

	// userAgent identifies this client on every request. The platform rejects
	// anonymous callers, so omitting it is a protocol violation.
	userAgent = "vrcswitch/0.1 (contact: zamvr@proton.me)"

	authCookieName   = "auth"
	maxResponseBytes = 1 << 20
	requestTimeout   = 10 * time.Second
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.SessionClient = (*Client)(nil)

func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	parsed, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}, nil
}

// Validate probes whether the token still names a live session. Boolean by
// contract: transport failures and non-200 statuses all read as false.
func (c *Client) Validate(ctx context.Context, token string) bool {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("auth", "user"), nil)
	if err != nil {
		return false
	}
	attachSession(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("session validation request failed", "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	drain(resp.Body)

	return resp.StatusCode == http.StatusOK
}

// Login submits username and password with Basic auth against the who-am-I
// endpoint. The session token rides back on the auth cookie, even when the
// response asks for a second factor.
func (c *Client) Login(ctx context.Context, username, password string) domain.LoginResult {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("auth", "user"), nil)
	if err != nil {
		return domain.LoginResult{Outcome: domain.LoginFailed}
	}
	req.SetBasicAuth(username, password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("login request failed", "error", err)
		return domain.LoginResult{Outcome: domain.LoginFailed}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return domain.LoginResult{Outcome: domain.LoginFailed, StatusCode: resp.StatusCode}
	}

	var payload authUserResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		c.logger.Debug("decode login response failed", "error", err)
		return domain.LoginResult{Outcome: domain.LoginFailed}
	}

	token := sessionCookie(resp)

	if len(payload.RequiresTwoFactorAuth) > 0 {
		return domain.LoginResult{
			Outcome:    domain.LoginTwoFactorRequired,
			Token:      token,
			StatusCode: resp.StatusCode,
		}
	}

	return domain.LoginResult{
		Outcome:     domain.LoginSucceeded,
		UserID:      payload.ID,
		DisplayName: payload.DisplayName,
		Token:       token,
		StatusCode:  resp.StatusCode,
	}
}

// VerifyTwoFactor submits a one-time code against the pending session. True
// only on an explicit success response.
func (c *Client) VerifyTwoFactor(ctx context.Context, token, code string) bool {
	body, err := json.Marshal(twoFactorRequest{Code: code})
	if err != nil {
		return false
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint("auth", "twofactorauth", "totp", "verify"), bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	attachSession(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("two-factor verification request failed", "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	drain(resp.Body)

	return resp.StatusCode == http.StatusOK
}

// FetchLocation reads the user's current location. Unknown means the API
// answered with no location; Unreachable means the answer never arrived or was
// not a success.
func (c *Client) FetchLocation(ctx context.Context, token, userID string) domain.LocationResult {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("users", userID), nil)
	if err != nil {
		return domain.LocationResult{Status: domain.LocationUnreachable}
	}
	attachSession(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("presence fetch failed", "error", err)
		return domain.LocationResult{Status: domain.LocationUnreachable}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return domain.LocationResult{Status: domain.LocationUnreachable}
	}

	var payload userResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		c.logger.Debug("decode user response failed", "error", err)
		return domain.LocationResult{Status: domain.LocationUnreachable}
	}

	if payload.Location == "" {
		return domain.LocationResult{Status: domain.LocationUnknown}
	}

	return domain.LocationResult{Status: domain.LocationKnown, Location: payload.Location}
}

// CurrentUser resolves the identity behind a session token.
func (c *Client) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint("auth", "user"), nil)
	if err != nil {
		return domain.User{}, err
	}
	attachSession(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("request current user: %w: %v", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return domain.User{}, fmt.Errorf("current user lookup: %w: status %d", domain.ErrAuthRejected, resp.StatusCode)
	}

	var payload authUserResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.User{}, fmt.Errorf("decode current user response: %w", err)
	}
	if payload.ID == "" {
		return domain.User{}, errors.New("current user response missing id")
	}

	return domain.User{ID: payload.ID, DisplayName: payload.DisplayName}, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.baseURL
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	u.Path += "/" + strings.Join(escaped, "/")

	return u.String()
}

func attachSession(req *http.Request, token string) {
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
}

func sessionCookie(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == authCookieName {
			return cookie.Value
		}
	}

	return ""
}

func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxResponseBytes))
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")

	return parsed, nil
}
