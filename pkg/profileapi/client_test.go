package profileapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"devb-web/internal/common"
	"devb-web/internal/config"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.Defaults().API
	cfg.BaseURL = srv.URL
	cfg.GitHubURL = srv.URL + "/gh"
	cfg.ContributionsURL = srv.URL + "/contrib"
	cfg.RSS2JSONURL = srv.URL + "/rss2json"
	cfg.APIKey = "test-key"
	cfg.LinkedInBackoff = time.Millisecond
	return NewClient(cfg, nil), srv
}

func TestProfile_SendsHeadersAndDecodes(t *testing.T) {
	var gotKey, gotAccept string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/octocat/profile" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotKey = r.Header.Get("X-Api-Key")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, `{"username":"octocat","name":"The Octocat","issues_closed":4,"social_accounts":[{"provider":"linkedin","url":"https://linkedin.com/in/octo"}]}`)
	}))

	p := c.Profile(context.Background(), "octocat")
	if p == nil {
		t.Fatal("expected profile")
	}
	if p.Name != "The Octocat" || p.IssuesClosed != 4 || len(p.SocialAccounts) != 1 {
		t.Errorf("unexpected profile %+v", p)
	}
	if gotKey != "test-key" {
		t.Errorf("X-Api-Key = %q, want test-key", gotKey)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestFetch_EmptyUsernameMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	ctx := context.Background()

	if c.Profile(ctx, "") != nil || c.Projects(ctx, "   ") != nil || c.LinkedIn(ctx, "") != nil {
		t.Error("expected nil for empty username")
	}
	if c.MediumBlogs(ctx, "") != nil || c.Contributions(ctx, "") != nil || c.LinkedInWithRetry(ctx, "") != nil {
		t.Error("expected nil for empty username")
	}
	if calls.Load() != 0 {
		t.Errorf("made %d calls", calls.Load())
	}
}

func TestFetch_FailuresYieldNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"not found", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{"malformed", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"username":`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			if p := c.Projects(context.Background(), "octocat"); p != nil {
				t.Errorf("expected nil, got %+v", p)
			}
			if c.Cache().size() != 0 {
				t.Error("failures must not be cached")
			}
		})
	}
}

func TestFetch_NetworkErrorYieldsNil(t *testing.T) {
	c, srv := newTestClient(t, http.NotFoundHandler())
	srv.Close()
	if c.Profile(context.Background(), "octocat") != nil {
		t.Error("expected nil on network error")
	}
}

func TestFetch_CachesByPath(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"top_projects":[{"name":"a","stars":3}],"top_languages":[["Go",12],["Rust",3]]}`)
	}))
	ctx := context.Background()

	first := c.Projects(ctx, "octocat")
	second := c.Projects(ctx, "octocat")
	if first == nil || second == nil {
		t.Fatal("expected projects")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if len(second.TopLanguages) != 2 || second.TopLanguages[0].Name != "Go" {
		t.Errorf("languages = %+v", second.TopLanguages)
	}

	c.Projects(ctx, "other")
	if calls.Load() != 2 {
		t.Errorf("different path should miss the cache, calls = %d", calls.Load())
	}
}

func TestLinkedInWithRetry(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"basic_info":{"full_name":"jane doe"},"experience":[],"education":[]}`)
	}))

	p := c.LinkedInWithRetry(context.Background(), "jane")
	if p == nil {
		t.Fatal("expected success on third attempt")
	}
	if p.BasicInfo.FullName != "jane doe" {
		t.Errorf("full name = %q", p.BasicInfo.FullName)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestLinkedInWithRetry_GivesUp(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	if p := c.LinkedInWithRetry(context.Background(), "jane"); p != nil {
		t.Error("expected nil after exhausting attempts")
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestLinkedInWithRetry_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	c.linkedInBackoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	if c.LinkedInWithRetry(ctx, "jane") != nil {
		t.Error("expected nil")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("retry loop ignored cancellation")
	}
}

func TestLookupGitHubUser(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gh/users/octocat":
			if r.Header.Get("X-Api-Key") != "" {
				t.Error("api key leaked to GitHub")
			}
			fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","avatar_url":"https://a/1","bio":null}`)
		case "/gh/users/ghost":
			w.WriteHeader(http.StatusNotFound)
		case "/gh/users/limited":
			w.WriteHeader(http.StatusForbidden)
		case "/gh/users/garbled":
			fmt.Fprint(w, `not json`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	ctx := context.Background()

	u, err := c.LookupGitHubUser(ctx, "octocat")
	if err != nil || u == nil || u.Login != "octocat" || u.Bio != nil {
		t.Fatalf("octocat = %+v, %v", u, err)
	}

	tests := []struct {
		username string
		want     error
	}{
		{"ghost", common.ErrNotFound},
		{"limited", common.ErrRateLimited},
		{"garbled", common.ErrMalformedResponse},
		{"boom", common.ErrNetwork},
		{"", common.ErrInvalidInput},
	}
	for _, tt := range tests {
		if _, err := c.LookupGitHubUser(ctx, tt.username); !errors.Is(err, tt.want) {
			t.Errorf("LookupGitHubUser(%q) err = %v, want %v", tt.username, err, tt.want)
		}
	}
	if c.GitHubUser(ctx, "ghost") != nil {
		t.Error("GitHubUser should swallow errors")
	}
}

func TestContributions(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contrib/v4/octocat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"total":{"2023":120,"2024":80},"contributions":[{"date":"2024-01-01","count":3,"level":1}]}`)
	}))
	d := c.Contributions(context.Background(), "octocat")
	if d == nil || d.Total["2023"] != 120 || len(d.Contributions) != 1 {
		t.Errorf("contributions = %+v", d)
	}
}

func TestMediumBlogs(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("rss_url"); got != "https://medium.com/feed/@writer" {
			t.Errorf("rss_url = %q", got)
		}
		long := strings.Repeat("word ", 100)
		fmt.Fprintf(w, `{"status":"ok","items":[
			{"title":"With thumb","link":"https://medium.com/@writer/a","pubDate":"2024-01-02 10:00:00","thumbnail":"https://img/t.png","description":"<p>Short body text.</p>","categories":["go"]},
			{"title":"No thumb","link":"https://medium.com/@writer/b","pubDate":"2024-01-03 10:00:00","thumbnail":"","description":"<figure><img alt=\"x\" src=\"https://img/first.png\"></figure><p>%s</p>","categories":[]}
		]}`, long)
	}))

	posts := c.MediumBlogs(context.Background(), "@writer")
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].Thumbnail != "https://img/t.png" {
		t.Errorf("thumbnail = %q", posts[0].Thumbnail)
	}
	if posts[1].Thumbnail != "https://img/first.png" {
		t.Errorf("fallback thumbnail = %q", posts[1].Thumbnail)
	}
	if strings.Contains(posts[1].Preview, "<") {
		t.Errorf("preview contains markup: %q", posts[1].Preview)
	}
	if !strings.HasSuffix(posts[1].Preview, "...") {
		t.Errorf("long preview should be truncated: %q", posts[1].Preview)
	}
}

func TestExtractUsernames(t *testing.T) {
	medium := map[string]string{
		"https://medium.com/@writer":          "writer",
		"https://medium.com/@writer/post-123": "writer",
		"https://medium.com/@writer?source=x": "writer",
		"https://medium.com/writer":           "",
	}
	for in, want := range medium {
		if got := ExtractMediumUsername(in); got != want {
			t.Errorf("ExtractMediumUsername(%q) = %q, want %q", in, got, want)
		}
	}

	linkedin := map[string]string{
		"https://www.linkedin.com/in/jane-doe/": "jane-doe",
		"https://linkedin.com/in/jane":          "jane",
		"linkedin.com/in/jane?trk=abc":          "jane",
		"https://linkedin.com/company/acme":     "",
	}
	for in, want := range linkedin {
		if got := ExtractLinkedInUsername(in); got != want {
			t.Errorf("ExtractLinkedInUsername(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCache_ExpiresAndPurges(t *testing.T) {
	c := NewCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", []byte("v"))
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	if n := c.Purge(); n != 1 || c.size() != 0 {
		t.Errorf("Purge = %d, size = %d", n, c.size())
	}
}
