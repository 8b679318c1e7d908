package banner

import (
	"testing"

	"devb-web/internal/domain"
)

func TestProfileNudge(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.SocialAccount
		wantOK   bool
		wantText string
		wantKey  string
	}{
		{
			name:     "both missing",
			wantOK:   true,
			wantText: "Alice, enhance your profile by connecting your LinkedIn and Medium account!",
			wantKey:  "linkedin-medium-banner-alice",
		},
		{
			name:     "medium missing",
			accounts: []domain.SocialAccount{{Provider: "LinkedIn", URL: "https://linkedin.com/in/alice"}},
			wantOK:   true,
			wantText: "Alice, enhance your profile by connecting your Medium account!",
			wantKey:  "medium-banner-alice",
		},
		{
			name:     "linkedin missing",
			accounts: []domain.SocialAccount{{Provider: "medium", URL: "https://medium.com/@alice"}},
			wantOK:   true,
			wantText: "Alice, enhance your profile by connecting your LinkedIn account!",
			wantKey:  "linkedin-banner-alice",
		},
		{
			name: "both connected",
			accounts: []domain.SocialAccount{
				{Provider: "linkedin"},
				{Provider: "MEDIUM"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Profile{Username: "alice", Name: "Alice", SocialAccounts: tt.accounts}
			u, ok := ProfileNudge(p)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if *u.Text != tt.wantText {
				t.Errorf("text = %q, want %q", *u.Text, tt.wantText)
			}
			if *u.BannerKey != tt.wantKey {
				t.Errorf("key = %q, want %q", *u.BannerKey, tt.wantKey)
			}
			if *u.Link != IntegrationsDocsURL || *u.LinkText != "Learn how" || !*u.Show {
				t.Errorf("unexpected link fields %+v", u)
			}
		})
	}
}
