package banner

import (
	"strings"

	"devb-web/internal/domain"
	"devb-web/internal/social"
)

const (
	IntegrationsDocsURL = "https://docs.devb.io/#/02.-Integrations-Overview"
	nudgeLinkText       = "Learn how"
)

// ProfileNudge returns the banner a profile page shows when LinkedIn or Medium
// is not connected. ok is false when both are connected.
func ProfileNudge(p domain.Profile) (update domain.BannerUpdate, ok bool) {
	hasLinkedIn := social.Connected(p, "linkedin")
	hasMedium := social.Connected(p, "medium")
	if hasLinkedIn && hasMedium {
		return domain.BannerUpdate{}, false
	}

	var missing []string
	if !hasLinkedIn {
		missing = append(missing, "LinkedIn")
	}
	if !hasMedium {
		missing = append(missing, "Medium")
	}

	name := p.Name
	if name == "" {
		name = p.Username
	}
	text := name + ", enhance your profile by connecting your " + strings.Join(missing, " and ") + " account!"
	key := strings.ToLower(strings.Join(missing, "-")) + "-banner-" + p.Username

	show := true
	link := IntegrationsDocsURL
	linkText := nudgeLinkText
	return domain.BannerUpdate{
		Show:      &show,
		BannerKey: &key,
		Text:      &text,
		Link:      &link,
		LinkText:  &linkText,
	}, true
}
