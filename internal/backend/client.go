// Package backend is the HTTP client for the list-sharing API: items,
// sessions, and the follow graph. Session state rides on a cookie jar;
// the authenticated username is cached on the client after login.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Client talks to the remote backend. Safe for use from multiple goroutines.
type Client struct {
	baseURL string
	http    *http.Client

	mu       sync.Mutex
	username string
}

// NewClient creates a client for the backend at baseURL. A cookie jar keeps
// the session across calls.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// Username returns the cached authenticated username, or "" if there is no
// session. Implements tracker.Identity.
func (c *Client) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

func (c *Client) setUsername(name string) {
	c.mu.Lock()
	c.username = name
	c.mu.Unlock()
}

// do performs one request and decodes the JSON response into out (if non-nil).
// Non-2xx responses are decoded as {error} and returned as an *APIError.
// One attempt only: no retry, no backoff.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp)
		if errors.Is(apiErr, ErrUnauthenticated) {
			// The cookie session is gone; stop attributing items to it
			// until the next successful login.
			c.setUsername("")
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// --- Items ---

// CreateItem posts a tracked item to the backend. One attempt only; any
// failure is the caller's to handle (the pipeline falls back to the local
// store).
func (c *Client) CreateItem(ctx context.Context, item tracker.Item) error {
	body := map[string]string{
		"title":    item.Title,
		"url":      item.URL,
		"type":     string(item.Kind),
		"username": item.Username,
	}
	var ack map[string]any
	return c.do(ctx, http.MethodPost, "/items", body, &ack)
}

// UserItems fetches all items owned by username.
func (c *Client) UserItems(ctx context.Context, username string) ([]tracker.Item, error) {
	var items []tracker.Item
	path := "/user/" + url.PathEscape(username) + "/items"
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItem removes a backend item by ID.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/item/"+url.PathEscape(id), nil, nil)
}

// --- Session ---

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and caches the username on success.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if err := c.do(ctx, http.MethodPost, "/login", credentials{username, password}, nil); err != nil {
		return err
	}
	c.setUsername(username)
	return nil
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/register", credentials{username, password}, nil)
}

// Logout ends the session and clears the cached username.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/logout", nil, nil)
	c.setUsername("")
	return err
}

// Session asks the backend who we are and refreshes the cached username.
func (c *Client) Session(ctx context.Context) (SessionInfo, error) {
	var info SessionInfo
	if err := c.do(ctx, http.MethodGet, "/session", nil, &info); err != nil {
		return SessionInfo{}, err
	}
	if info.LoggedIn {
		c.setUsername(info.Username)
	} else {
		c.setUsername("")
	}
	return info, nil
}

// --- Follow graph ---

// Follow starts following username.
func (c *Client) Follow(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/follow/"+url.PathEscape(username), nil, nil)
}

// Unfollow stops following username.
func (c *Client) Unfollow(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/unfollow/"+url.PathEscape(username), nil, nil)
}

// Following lists the users username follows.
func (c *Client) Following(ctx context.Context, username string) ([]string, error) {
	var users []string
	err := c.do(ctx, http.MethodGet, "/following/"+url.PathEscape(username), nil, &users)
	return users, err
}

// Followers lists the users following username.
func (c *Client) Followers(ctx context.Context, username string) ([]string, error) {
	var users []string
	err := c.do(ctx, http.MethodGet, "/followers/"+url.PathEscape(username), nil, &users)
	return users, err
}

// IsFollowing reports whether the session user follows username.
func (c *Client) IsFollowing(ctx context.Context, username string) (bool, error) {
	var out struct {
		IsFollowing bool `json:"is_following"`
	}
	err := c.do(ctx, http.MethodGet, "/is_following/"+url.PathEscape(username), nil, &out)
	return out.IsFollowing, err
}

// --- Summarization ---

// Summarize sends text to the backend summarizer.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	err := c.do(ctx, http.MethodPost, "/summarize", map[string]string{"text": text}, &out)
	return out.Summary, err
}
