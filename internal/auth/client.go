// Package auth is the client side of the identity provider. The rest of
// the program only sees the narrow Token/IsAuthenticated/SignOut surface;
// token storage and expiry bookkeeping stay in here.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/debuglog"
)

// Client talks to the identity provider and caches the current session.
// It is constructed once at the composition point and passed to whatever
// needs it; there is deliberately no package-level instance.
type Client struct {
	url    string
	client *http.Client
	store  *SessionStore

	mu      sync.RWMutex
	session *Session
	now     func() time.Time
}

func NewClient(cfg *config.Config, store *SessionStore) (*Client, error) {
	c := &Client{
		url:    strings.TrimRight(cfg.Auth.URL, "/"),
		client: &http.Client{Timeout: cfg.API.HTTPTimeout},
		store:  store,
		now:    time.Now,
	}

	session, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	c.session = session

	return c, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// SignIn exchanges credentials for a session and persists it.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}

	var tr tokenResponse
	if err := c.postJSON(ctx, "/token?grant_type=password", payload, &tr); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("sign in: provider returned no access token")
	}

	session := &Session{
		Email:        email,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    c.expiry(tr.ExpiresIn),
	}

	if err := c.store.Save(session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	debuglog.Infof("auth: signed in as %s", email)
	return nil
}

// Token returns the current access token, refreshing it first when it has
// expired and a refresh token is on hand. An empty string means the caller
// should treat the user as signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		return ""
	}
	if !session.Expired(c.now()) {
		return session.AccessToken
	}
	if session.RefreshToken == "" {
		return ""
	}

	if err := c.refresh(session); err != nil {
		debuglog.Warnf("auth: token refresh failed: %v", err)
		return ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.AccessToken
}

// IsAuthenticated reports whether a usable token exists.
func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

// Email returns the signed-in address, or "" when signed out.
func (c *Client) Email() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Email
}

// SignOut revokes the session best-effort and clears local state. The
// local clear happens even when the provider call fails; being signed out
// locally matters more than the revocation round trip.
func (c *Client) SignOut() error {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.mu.Unlock()

	if session != nil && session.AccessToken != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.revoke(ctx, session.AccessToken); err != nil {
			debuglog.Warnf("auth: remote sign-out failed: %v", err)
		}
	}

	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (c *Client) refresh(old *Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payload := map[string]string{"refresh_token": old.RefreshToken}

	var tr tokenResponse
	if err := c.postJSON(ctx, "/token?grant_type=refresh_token", payload, &tr); err != nil {
		return err
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("provider returned no access token")
	}

	session := &Session{
		Email:        old.Email,
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    c.expiry(tr.ExpiresIn),
	}
	if session.RefreshToken == "" {
		session.RefreshToken = old.RefreshToken
	}

	if err := c.store.Save(session); err != nil {
		return fmt.Errorf("saving refreshed session: %w", err)
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	debuglog.Debugf("auth: token refreshed")
	return nil
}

func (c *Client) revoke(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.Unmarshal(body, out)
}

func (c *Client) expiry(expiresIn int) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}
	return c.now().Add(time.Duration(expiresIn) * time.Second)
}
