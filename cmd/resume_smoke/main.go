// Command resume_smoke generates a resume PDF end to end against a local mock
// of the Profile API, using the real client and headless Chrome.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"devb-web/internal/config"
	"devb-web/internal/usecase"
	"devb-web/pkg/infrastructure"
	"devb-web/pkg/profileapi"
)

var fixtures = map[string]interface{}{
	"profile": map[string]interface{}{
		"username":             "octo-dev",
		"name":                 "octo dev",
		"bio":                  "Backend engineer",
		"location":             "Berlin",
		"public_repos":         42,
		"pull_requests_merged": 120,
		"issues_closed":        35,
		"achievements":         map[string]int{"total_contributions": 1800, "repositories_contributed_to": 14},
		"social_accounts":      []map[string]string{{"provider": "linkedin", "url": "https://www.linkedin.com/in/octo-dev/"}},
		"about":                "Builds reliable distributed systems and enjoys open source.",
	},
	"projects": map[string]interface{}{
		"top_projects": []map[string]interface{}{
			{"name": "queue", "description": "A durable job queue", "stars": 310, "language": "Go", "url": "https://github.com/octo-dev/queue"},
			{"name": "lint", "description": "Config linter", "stars": 45, "language": "Rust", "url": "https://github.com/octo-dev/lint", "homepage": "https://lint.example.dev"},
		},
		"top_languages": [][]interface{}{{"Go", 12}, {"Rust", 5}, {"TypeScript", 3}},
	},
	"linkedin": map[string]interface{}{
		"basic_info": map[string]interface{}{"full_name": "octo dev", "headline": "Staff Engineer", "profile_url": "https://www.linkedin.com/in/octo-dev/"},
		"experience": []map[string]interface{}{
			{"title": "Staff Engineer", "company": "Acme", "duration": map[string]interface{}{"start": map[string]int{"year": 2021, "month": 3}}},
		},
		"education": []map[string]interface{}{
			{"school": "TU Berlin", "degree": "BSc", "field": "Computer Science", "duration": map[string]interface{}{"start": map[string]int{"year": 2012}, "end": map[string]int{"year": 2016}}},
		},
	},
}

func startMockAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "user" {
			http.NotFound(w, r)
			return
		}
		body, ok := fixtures[parts[2]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func main() {
	out := flag.String("out", "resume-smoke.pdf", "where to write the PDF")
	chrome := flag.String("chrome", os.Getenv("CHROME_PATH"), "path to a Chrome binary")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv := startMockAPI()
	defer srv.Close()

	cfg := config.Defaults().API
	cfg.BaseURL = srv.URL
	cfg.LinkedInBackoff = 10 * time.Millisecond
	client := profileapi.NewClient(cfg, logger)

	svc := usecase.NewResumeService(client, infrastructure.NewChromedpRenderer(*chrome, time.Minute), nil, 3, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pdf, err := svc.Generate(ctx, "octo-dev")
	if err != nil {
		logger.Error("smoke: generate failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, pdf, 0o644); err != nil {
		logger.Error("smoke: write failed", "error", err)
		os.Exit(1)
	}
	logger.Info("smoke: wrote resume", "path", *out, "bytes", len(pdf))
}
