// Package social decides how a profile's linked accounts are labelled and which
// icon they get.
package social

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"devb-web/internal/domain"
)

const Generic = "generic"

// knownDomains maps a registrable domain to its platform tag.
var knownDomains = map[string]string{
	"linkedin.com":      "linkedin",
	"twitter.com":       "twitter",
	"x.com":             "twitter",
	"medium.com":        "medium",
	"dev.to":            "devto",
	"youtube.com":       "youtube",
	"youtu.be":          "youtube",
	"instagram.com":     "instagram",
	"facebook.com":      "facebook",
	"github.com":        "github",
	"gitlab.com":        "gitlab",
	"stackoverflow.com": "stackoverflow",
	"hashnode.dev":      "hashnode",
	"hashnode.com":      "hashnode",
	"mastodon.social":   "mastodon",
	"bsky.app":          "bluesky",
	"devb.io":           "devb",
}

// Label is the text shown for an account: the bare host for generic links,
// otherwise the provider tag.
func Label(a domain.SocialAccount) string {
	if !strings.EqualFold(a.Provider, Generic) {
		return a.Provider
	}
	host := hostOf(a.URL)
	if host == "" {
		return a.URL
	}
	return strings.TrimPrefix(host, "www.")
}

// Platform returns the platform tag used to pick an icon. Generic links are
// matched on their registrable domain, so blog.medium.com is medium.
func Platform(a domain.SocialAccount) string {
	provider := strings.ToLower(a.Provider)
	if provider != Generic && provider != "" {
		return provider
	}
	host := hostOf(a.URL)
	if host == "" {
		return Generic
	}
	domainName, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domainName = host
	}
	if tag, ok := knownDomains[domainName]; ok {
		return tag
	}
	return Generic
}

// Connected reports whether any account of p resolves to platform, including
// generic links to that platform's domain.
func Connected(p domain.Profile, platform string) bool {
	for _, a := range p.SocialAccounts {
		if Platform(a) == platform {
			return true
		}
	}
	return false
}

// Find returns the first account with the given provider tag, ignoring case.
func Find(p domain.Profile, provider string) *domain.SocialAccount {
	for i := range p.SocialAccounts {
		if strings.EqualFold(p.SocialAccounts[i].Provider, provider) {
			return &p.SocialAccounts[i]
		}
	}
	return nil
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
