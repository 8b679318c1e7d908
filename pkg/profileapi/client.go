// Package profileapi reads developer data from the devb.io Profile API and the
// third-party services the site uses (GitHub, the contribution graph API and
// Medium via rss2json).
//
// Data fetches never return errors: failures are logged and yield nil, so a
// page section can simply render nothing. LookupGitHubUser is the exception;
// it reports the error kind because the username validator shows it.
package profileapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devb-web/internal/common"
	"devb-web/internal/config"
	"devb-web/internal/domain"
)

// Kind names a Profile API resource under /user/{username}/.
type Kind string

const (
	KindProfile  Kind = "profile"
	KindProjects Kind = "projects"
	KindLinkedIn Kind = "linkedin"
)

type Client struct {
	BaseURL          string
	APIKey           string
	GitHubURL        string
	ContributionsURL string
	RSS2JSONURL      string
	HTTP             *http.Client

	cache            *Cache
	linkedInAttempts int
	linkedInBackoff  time.Duration
	logger           *slog.Logger
}

func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	attempts := cfg.LinkedInMaxAttempts
	if attempts < 1 {
		attempts = 3
	}
	return &Client{
		BaseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:           cfg.APIKey,
		GitHubURL:        strings.TrimRight(cfg.GitHubURL, "/"),
		ContributionsURL: strings.TrimRight(cfg.ContributionsURL, "/"),
		RSS2JSONURL:      cfg.RSS2JSONURL,
		HTTP:             &http.Client{Timeout: timeout},
		cache:            NewCache(cfg.CacheTTL),
		linkedInAttempts: attempts,
		linkedInBackoff:  cfg.LinkedInBackoff,
		logger:           logger,
	}
}

// Cache exposes the response cache so it can be purged on a schedule.
func (c *Client) Cache() *Cache { return c.cache }

func (c *Client) Profile(ctx context.Context, username string) *domain.Profile {
	return fetch[domain.Profile](ctx, c, KindProfile, username)
}

func (c *Client) Projects(ctx context.Context, username string) *domain.UserProject {
	return fetch[domain.UserProject](ctx, c, KindProjects, username)
}

func (c *Client) LinkedIn(ctx context.Context, username string) *domain.LinkedInProfile {
	return fetch[domain.LinkedInProfile](ctx, c, KindLinkedIn, username)
}

// LinkedInWithRetry retries the LinkedIn fetch with exponential backoff and
// gives up with nil once every attempt has failed or ctx is done.
func (c *Client) LinkedInWithRetry(ctx context.Context, username string) *domain.LinkedInProfile {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	for i := 0; i < c.linkedInAttempts; i++ {
		if p := c.LinkedIn(ctx, username); p != nil {
			return p
		}
		c.logger.Warn("profileapi: linkedin attempt failed", "username", username, "attempt", i+1, "max_attempts", c.linkedInAttempts)
		if i < c.linkedInAttempts-1 {
			backoff := time.Duration(1<<i) * c.linkedInBackoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil
			}
		}
	}
	c.logger.Error("profileapi: linkedin unavailable after retries", "username", username)
	return nil
}

func fetch[T any](ctx context.Context, c *Client, kind Kind, username string) *T {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	path := "/user/" + url.PathEscape(username) + "/" + string(kind)

	var out T
	if err := c.getJSON(ctx, c.BaseURL+path, true, &out); err != nil {
		c.logger.Error("profileapi: fetch failed", "kind", kind, "username", username, "error", err)
		return nil
	}
	return &out
}

// getJSON GETs rawURL and decodes the body into out. Successful bodies are
// cached by URL; failures are not.
func (c *Client) getJSON(ctx context.Context, rawURL string, withKey bool, out interface{}) error {
	body, ok := c.cache.Get(rawURL)
	if !ok {
		b, err := c.get(ctx, rawURL, withKey)
		if err != nil {
			return err
		}
		body = b
	}
	if err := decode(body, out); err != nil {
		return err
	}
	if !ok {
		c.cache.Set(rawURL, body)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string, withKey bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if withKey {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := common.StatusError(resp.StatusCode); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	return b, nil
}
