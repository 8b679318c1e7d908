package repository

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"devb-web/internal/domain"
	"devb-web/internal/social"
	"devb-web/pkg/profileapi"
)

// ProfileSource is the subset of the Profile API client the aggregator reads.
// Every method returns nil when the data is unavailable.
type ProfileSource interface {
	Profile(ctx context.Context, username string) *domain.Profile
	Projects(ctx context.Context, username string) *domain.UserProject
	LinkedInWithRetry(ctx context.Context, username string) *domain.LinkedInProfile
	MediumBlogs(ctx context.Context, username string) []domain.MediumBlog
}

// AggregateResult holds whatever could be fetched for one developer. Any field
// may be nil.
type AggregateResult struct {
	Username string
	Profile  *domain.Profile
	Projects *domain.UserProject
	LinkedIn *domain.LinkedInProfile
	Medium   []domain.MediumBlog

	LinkedInUsername string
	MediumUsername   string
}

type AggregateOptions struct {
	LinkedIn bool
	Medium   bool
}

// AggregateForUser fetches the profile and projects in parallel, then the
// LinkedIn and Medium data linked from the profile. It is best-effort: a
// missing source leaves its field nil and never fails the others.
func AggregateForUser(ctx context.Context, src ProfileSource, username string, opts AggregateOptions) *AggregateResult {
	res := &AggregateResult{Username: strings.TrimSpace(username)}
	if res.Username == "" {
		return res
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Projects = src.Projects(gctx, res.Username)
		return nil
	})
	g.Go(func() error {
		res.Profile = src.Profile(gctx, res.Username)
		if res.Profile == nil {
			return nil
		}
		res.LinkedInUsername = LinkedInHandle(*res.Profile)
		res.MediumUsername = MediumHandle(*res.Profile)

		linked, lctx := errgroup.WithContext(gctx)
		if opts.LinkedIn && res.LinkedInUsername != "" {
			linked.Go(func() error {
				res.LinkedIn = src.LinkedInWithRetry(lctx, res.LinkedInUsername)
				return nil
			})
		}
		if opts.Medium && res.MediumUsername != "" {
			linked.Go(func() error {
				res.Medium = src.MediumBlogs(lctx, res.MediumUsername)
				return nil
			})
		}
		return linked.Wait()
	})
	_ = g.Wait()
	return res
}

// LinkedInHandle returns the LinkedIn username from the profile's linked
// LinkedIn account, or "".
func LinkedInHandle(p domain.Profile) string {
	if a := social.Find(p, "linkedin"); a != nil {
		return profileapi.ExtractLinkedInUsername(a.URL)
	}
	return ""
}

// MediumHandle returns the Medium username from the first account that points
// at Medium, whether tagged "medium" or a generic medium.com link.
func MediumHandle(p domain.Profile) string {
	for _, a := range p.SocialAccounts {
		if social.Platform(a) == "medium" {
			if h := profileapi.ExtractMediumUsername(a.URL); h != "" {
				return h
			}
		}
	}
	return ""
}
