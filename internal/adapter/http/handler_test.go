package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devb-web/internal/banner"
	"devb-web/internal/common"
	"devb-web/internal/domain"
	"devb-web/internal/validator"
)

type fakeSource struct {
	profiles map[string]*domain.Profile
	linkedin map[string]*domain.LinkedInProfile
	totals   map[string]int
}

func (f *fakeSource) Profile(_ context.Context, u string) *domain.Profile { return f.profiles[u] }

func (f *fakeSource) Projects(_ context.Context, u string) *domain.UserProject {
	if f.profiles[u] == nil {
		return nil
	}
	desc := "A tool"
	return &domain.UserProject{TopProjects: []domain.Project{{Name: "tool", Description: &desc, URL: "https://github.com/" + u + "/tool", Stars: 4}}}
}

func (f *fakeSource) LinkedInWithRetry(_ context.Context, u string) *domain.LinkedInProfile {
	return f.linkedin[u]
}

func (f *fakeSource) MediumBlogs(context.Context, string) []domain.MediumBlog { return nil }

func (f *fakeSource) Contributions(_ context.Context, u string) *domain.ContributionsData {
	total, ok := f.totals[u]
	if !ok {
		return nil
	}
	return &domain.ContributionsData{Total: map[string]int{"2024": total}}
}

func (f *fakeSource) GitHubUser(_ context.Context, u string) *domain.GitHubUser {
	if p := f.profiles[u]; p != nil {
		return &domain.GitHubUser{Login: u, Name: &p.Name}
	}
	return nil
}

func (f *fakeSource) LookupGitHubUser(_ context.Context, u string) (*domain.GitHubUser, error) {
	if p := f.profiles[u]; p != nil {
		return &domain.GitHubUser{Login: u, Name: &p.Name}, nil
	}
	return nil, common.ErrNotFound
}

type fakeResumes struct {
	pdf   []byte
	err   error
	calls *int
}

func (f fakeResumes) Generate(context.Context, string) ([]byte, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.pdf, f.err
}

func newTestApp(t *testing.T, resumes ResumeGenerator) (*fakeSource, func(req *http.Request) *http.Response) {
	t.Helper()
	month := 3
	src := &fakeSource{
		profiles: map[string]*domain.Profile{
			"alice": {Username: "alice", Name: "Alice Smith", PublicRepos: 7, SocialAccounts: []domain.SocialAccount{
				{Provider: "linkedin", URL: "https://www.linkedin.com/in/alice/"},
				{Provider: "generic", URL: "https://www.example.dev/alice"},
			}},
			"bob": {Username: "bob", Name: "Bob Jones"},
		},
		linkedin: map[string]*domain.LinkedInProfile{
			"alice": {Experience: []domain.Experience{{
				Title: "Engineer", Company: "Acme", Duration: domain.Duration{Start: domain.YearMonth{Year: 2021, Month: &month}},
			}}},
		},
		totals: map[string]int{"alice": 900, "bob": 100},
	}
	reg := validator.NewRegistry(src, validator.Options{Debounce: 10 * time.Millisecond}, time.Minute, nil)
	t.Cleanup(reg.Close)

	storages := map[string]banner.Storage{}
	h := NewHandler(src, resumes, reg, func(id string) banner.Storage {
		if s, ok := storages[id]; ok {
			return s
		}
		storages[id] = banner.NewMemoryStorage()
		return storages[id]
	}, nil)
	app := NewApp(h)

	return src, func(req *http.Request) *http.Response {
		t.Helper()
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		return resp
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func withVisitor(req *http.Request, id string) *http.Request {
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	return req
}

func TestHealth_SetsVisitorCookie(t *testing.T) {
	_, do := newTestApp(t, nil)
	resp := do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == VisitorCookie && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("visitor cookie not set")
	}
}

func TestResume(t *testing.T) {
	t.Run("missing username", func(t *testing.T) {
		_, do := newTestApp(t, fakeResumes{})
		resp := do(httptest.NewRequest(http.MethodGet, "/api/resume", nil))
		body := readBody(t, resp)
		if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Username is required") {
			t.Errorf("got %d %s", resp.StatusCode, body)
		}
	})

	t.Run("malformed username", func(t *testing.T) {
		var calls int
		_, do := newTestApp(t, fakeResumes{pdf: []byte("%PDF"), calls: &calls})
		for _, q := range []string{"a%22b", "-alice", "al--ice", "a%20b"} {
			resp := do(httptest.NewRequest(http.MethodGet, "/api/resume?username="+q, nil))
			body := readBody(t, resp)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("%s: got %d %s", q, resp.StatusCode, body)
			}
			if resp.Header.Get("Content-Disposition") != "" {
				t.Errorf("%s: no attachment expected", q)
			}
		}
		if calls != 0 {
			t.Errorf("generator called %d times for malformed usernames", calls)
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		_, do := newTestApp(t, fakeResumes{err: errors.New("chrome missing")})
		resp := do(httptest.NewRequest(http.MethodGet, "/api/resume?username=alice", nil))
		body := readBody(t, resp)
		if resp.StatusCode != http.StatusInternalServerError || !strings.Contains(body, "Failed to generate resume") {
			t.Errorf("got %d %s", resp.StatusCode, body)
		}
	})

	t.Run("pdf", func(t *testing.T) {
		_, do := newTestApp(t, fakeResumes{pdf: []byte("%PDF-1.7")})
		resp := do(httptest.NewRequest(http.MethodGet, "/api/resume?username=alice", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Content-Type = %q", ct)
		}
		if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="alice-resume.pdf"` {
			t.Errorf("Content-Disposition = %q", cd)
		}
		if body := readBody(t, resp); body != "%PDF-1.7" {
			t.Errorf("body = %q", body)
		}
	})
}

func TestValidateUsername(t *testing.T) {
	_, do := newTestApp(t, nil)
	tests := []struct {
		path  string
		state string
	}{
		{"/api/validate/alice", "valid"},
		{"/api/validate/nobody", "invalid"},
		{"/api/validate/-bad-", "format_invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var res struct {
				State string `json:"state"`
			}
			if err := json.Unmarshal([]byte(readBody(t, do(httptest.NewRequest(http.MethodGet, tt.path, nil)))), &res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res.State != tt.state {
				t.Errorf("state = %q, want %q", res.State, tt.state)
			}
		})
	}
}

func TestValidateSession(t *testing.T) {
	_, do := newTestApp(t, nil)
	visitor := "7f1f5a9e-3b8c-4d61-9a57-1c2f0e6b8d40"

	req := httptest.NewRequest(http.MethodPost, "/api/validate/input", strings.NewReader(`{"value":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	if body := readBody(t, do(withVisitor(req, visitor))); !strings.Contains(body, `"state":"idle"`) {
		t.Fatalf("input response = %s", body)
	}

	confirm := httptest.NewRequest(http.MethodPost, "/api/validate/confirm", nil)
	readBody(t, do(withVisitor(confirm, visitor)))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		body := readBody(t, do(withVisitor(httptest.NewRequest(http.MethodGet, "/api/validate/state", nil), visitor)))
		if strings.Contains(body, `"state":"valid"`) {
			if !strings.Contains(body, "Alice Smith") {
				t.Errorf("preview missing: %s", body)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("session never became valid")
}

func TestBanner_DismissIsPerVisitor(t *testing.T) {
	_, do := newTestApp(t, nil)
	a := "0b6f3d4e-8a0c-4f0e-9b0a-5b3c2d1e0f01"
	b := "0b6f3d4e-8a0c-4f0e-9b0a-5b3c2d1e0f02"

	get := func(visitor string) domain.BannerData {
		var data domain.BannerData
		body := readBody(t, do(withVisitor(httptest.NewRequest(http.MethodGet, "/api/banner?username=alice", nil), visitor)))
		if err := json.Unmarshal([]byte(body), &data); err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
		return data
	}

	first := get(a)
	if !first.Show || first.BannerKey != "medium-banner-alice" {
		t.Fatalf("unexpected banner %+v", first)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/banner/dismiss", strings.NewReader(`{"bannerKey":"medium-banner-alice"}`))
	req.Header.Set("Content-Type", "application/json")
	if body := readBody(t, do(withVisitor(req, a))); !strings.Contains(body, `"show":false`) {
		t.Errorf("dismiss response = %s", body)
	}

	if get(a).Show {
		t.Error("dismissed banner shown again")
	}
	if !get(b).Show {
		t.Error("dismissal leaked to another visitor")
	}
}

func TestBanner_FormDismissRedirects(t *testing.T) {
	_, do := newTestApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/banner/dismiss", strings.NewReader("bannerKey=medium-banner-alice"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://localhost/alice")
	resp := do(req)
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/alice" {
		t.Errorf("got %d to %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestPortfolio(t *testing.T) {
	_, do := newTestApp(t, nil)

	resp := do(httptest.NewRequest(http.MethodGet, "/alice", nil))
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Alice Smith", "Engineer", "2021 Mar", "Present", "example.dev", "tool", "enhance your profile"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	for _, path := range []string{"/nobody", "/-bad-"} {
		if resp := do(httptest.NewRequest(http.MethodGet, path, nil)); resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestLanding(t *testing.T) {
	_, do := newTestApp(t, nil)

	resp := do(httptest.NewRequest(http.MethodGet, "/?username=alice", nil))
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/alice" {
		t.Errorf("got %d to %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = do(httptest.NewRequest(http.MethodGet, "/?username=nobody", nil))
	if body := readBody(t, resp); !strings.Contains(body, validator.Invalid.Message()) {
		t.Errorf("landing should show the lookup message")
	}
}

func TestMeme(t *testing.T) {
	_, do := newTestApp(t, nil)

	body := readBody(t, do(httptest.NewRequest(http.MethodGet, "/meme?me=alice&them=alice", nil)))
	if !strings.Contains(body, "compare to yourself") {
		t.Error("self comparison should be rejected")
	}

	body = readBody(t, do(httptest.NewRequest(http.MethodGet, "/meme?me=alice&them=bob", nil)))
	if !strings.Contains(body, "<strong>Alice</strong> out-contributes <strong>Bob</strong>") {
		t.Errorf("unexpected verdict: %s", body)
	}
	if !strings.Contains(body, `data-meme-index="8"`) {
		t.Error("meme index should be 8 for 900 vs 100")
	}

	body = readBody(t, do(httptest.NewRequest(http.MethodGet, "/meme?me=alice&them=ghost", nil)))
	if !strings.Contains(body, "Comparer username not found") {
		t.Error("missing side should be reported")
	}
}
