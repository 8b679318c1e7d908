//go:build ignore

// render_profile writes the resume HTML for a saved Profile API bundle, for
// checking the layout in a browser without Chrome printing.
//
//	go run tools/render_profile.go -in bundle.json -out resume.html
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"devb-web/internal/domain"
	"devb-web/internal/model"
	"devb-web/internal/resume"
)

type bundle struct {
	Profile  *domain.Profile         `json:"profile"`
	Projects *domain.UserProject     `json:"projects"`
	LinkedIn *domain.LinkedInProfile `json:"linkedin"`
}

func main() {
	in := flag.String("in", "profile_bundle.json", "JSON file with profile, projects and linkedin keys")
	out := flag.String("out", "resume.html", "output HTML file")
	flag.Parse()

	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read bundle: %v\n", err)
		os.Exit(2)
	}
	var data bundle
	if err := json.Unmarshal(b, &data); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}

	username := ""
	if data.Profile != nil {
		username = data.Profile.Username
	}
	r := resume.Build(username, data.Profile, data.Projects, data.LinkedIn)
	if err := model.Validate(r); err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		os.Exit(2)
	}
	html, err := resume.RenderHTML(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", *out)
}
