package profileapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"devb-web/internal/common"
	"devb-web/internal/domain"
)

// LookupGitHubUser fetches the public GitHub user. A 404 yields
// common.ErrNotFound and a 403 common.ErrRateLimited. Lookups are not cached,
// so a username that starts existing is seen right away.
func (c *Client) LookupGitHubUser(ctx context.Context, username string) (*domain.GitHubUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, common.ErrInvalidInput
	}
	body, err := c.get(ctx, c.GitHubURL+"/users/"+url.PathEscape(username), false)
	if err != nil {
		return nil, err
	}
	var u domain.GitHubUser
	if err := decode(body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GitHubUser is LookupGitHubUser for callers that only need the data.
func (c *Client) GitHubUser(ctx context.Context, username string) *domain.GitHubUser {
	u, err := c.LookupGitHubUser(ctx, username)
	if err != nil {
		c.logger.Error("profileapi: github lookup failed", "username", username, "error", err)
		return nil
	}
	return u
}

// Contributions fetches the yearly contribution graph for a GitHub user.
func (c *Client) Contributions(ctx context.Context, username string) *domain.ContributionsData {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	var out domain.ContributionsData
	if err := c.getJSON(ctx, c.ContributionsURL+"/v4/"+url.PathEscape(username), false, &out); err != nil {
		c.logger.Error("profileapi: contributions fetch failed", "username", username, "error", err)
		return nil
	}
	return &out
}

func decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	return nil
}
