// Package resume assembles a developer's resume document from their profile,
// projects and LinkedIn data, and renders it to HTML for printing.
package resume

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"devb-web/internal/domain"
	"devb-web/internal/model"
	"devb-web/internal/timeline"
)

const (
	MaxExperience = 3
	MaxProjects   = 3
	MaxEducation  = 1
	MaxSkills     = 3

	Footer         = "Autogenerated via devb.io"
	DefaultSummary = "Passionate software developer who enjoys building open source projects and " +
		"solving real problems with clean, maintainable code. Always learning, always shipping."
)

// Build assembles the resume. Any of the inputs may be nil.
func Build(username string, profile *domain.Profile, projects *domain.UserProject, linkedin *domain.LinkedInProfile) *model.Resume {
	if profile == nil {
		profile = &domain.Profile{}
	}
	if projects == nil {
		projects = &domain.UserProject{}
	}
	if linkedin == nil {
		linkedin = &domain.LinkedInProfile{}
	}
	if username == "" {
		username = profile.Username
	}

	return &model.Resume{
		Username:     username,
		Header:       header(username, profile, linkedin),
		Summary:      summary(profile),
		Experience:   experience(linkedin.Experience),
		Projects:     topProjects(projects.TopProjects),
		Education:    education(linkedin.Education),
		Skills:       skills(projects.TopLanguages),
		Achievements: Achievements(profile),
		Footer:       Footer,
	}
}

func header(username string, p *domain.Profile, li *domain.LinkedInProfile) model.Header {
	name := li.BasicInfo.FullName
	if strings.TrimSpace(name) == "" {
		name = p.Name
	}
	if strings.TrimSpace(name) == "" {
		name = username
	}

	h := model.Header{
		Name:        TitleCase(name),
		Headline:    li.BasicInfo.Headline,
		Location:    p.Location,
		GitHubURL:   "https://github.com/" + username,
		LinkedInURL: li.BasicInfo.ProfileURL,
		AvatarURL:   p.AvatarURL,
	}
	if h.Headline == "" {
		h.Headline = p.Bio
	}
	if h.Location == "" {
		h.Location = joinNonEmpty(", ", li.BasicInfo.Location.City, li.BasicInfo.Location.Country)
	}
	if h.LinkedInURL == "" {
		for _, a := range p.SocialAccounts {
			if strings.EqualFold(a.Provider, "linkedin") {
				h.LinkedInURL = a.URL
				break
			}
		}
	}
	return h
}

func summary(p *domain.Profile) string {
	if s := strings.TrimSpace(p.About); s != "" {
		return s
	}
	return DefaultSummary
}

func experience(items []domain.Experience) []model.Experience {
	out := make([]model.Experience, 0, min(len(items), MaxExperience))
	for _, e := range items[:min(len(items), MaxExperience)] {
		entry := model.Experience{
			Title:    e.Title,
			Company:  e.Company,
			Location: e.Location,
			Period:   Period(e.Duration),
		}
		if e.Description != nil {
			entry.Description = *e.Description
		}
		out = append(out, entry)
	}
	return out
}

func topProjects(items []domain.Project) []model.Project {
	out := make([]model.Project, 0, min(len(items), MaxProjects))
	for _, p := range items[:min(len(items), MaxProjects)] {
		entry := model.Project{
			Name:     p.Name,
			URL:      p.URL,
			Language: p.Language,
			Stars:    p.Stars,
		}
		if p.Description != nil {
			entry.Description = *p.Description
		}
		if p.Homepage != nil {
			entry.Homepage = strings.TrimSpace(*p.Homepage)
		}
		out = append(out, entry)
	}
	return out
}

func education(items []domain.Education) []model.Education {
	out := make([]model.Education, 0, min(len(items), MaxEducation))
	for _, e := range items[:min(len(items), MaxEducation)] {
		degree := e.Degree
		if e.Field != nil && *e.Field != "" {
			degree += " in " + *e.Field
		}
		period := strconv.Itoa(e.Duration.Start.Year) + " - " + timeline.PresentLabel
		if e.Duration.End != nil && e.Duration.End.Year > 0 {
			period = strconv.Itoa(e.Duration.Start.Year) + " - " + strconv.Itoa(e.Duration.End.Year)
		}
		out = append(out, model.Education{Degree: degree, School: e.School, Period: period})
	}
	return out
}

func skills(langs []domain.LanguageUsage) []string {
	out := make([]string, 0, MaxSkills)
	for _, l := range langs {
		if len(out) == MaxSkills {
			break
		}
		if l.Name != "" {
			out = append(out, l.Name)
		}
	}
	return out
}

// Achievements lists the profile metrics worth showing. A metric is only
// included when its value is greater than 1.
func Achievements(p *domain.Profile) []model.Achievement {
	candidates := []model.Achievement{
		{Label: "Total Contributions", Value: p.Achievements.TotalContributions},
		{Label: "Issues Closed", Value: p.IssuesClosed},
		{Label: "Public Repositories", Value: p.PublicRepos},
		{Label: "Repositories Contributed To", Value: p.Achievements.RepositoriesContributedTo},
		{Label: "Pull Requests Merged", Value: p.PullRequestsMerged},
	}
	out := make([]model.Achievement, 0, len(candidates))
	for _, a := range candidates {
		if a.Value > 1 {
			out = append(out, a)
		}
	}
	return out
}

// Period formats a LinkedIn duration as "Mar, 2020 - Nov, 2023", with
// "Present" for an open end.
func Period(d domain.Duration) string {
	end := timeline.PresentLabel
	if d.End != nil && d.End.Year > 0 {
		end = monthYear(*d.End)
	}
	return monthYear(d.Start) + " - " + end
}

func monthYear(ym domain.YearMonth) string {
	year := strconv.Itoa(ym.Year)
	if ym.Month == nil {
		return year
	}
	if name, ok := timeline.MonthName(*ym.Month); ok {
		return name + ", " + year
	}
	return year
}

// TitleCase upper-cases the first letter of every word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
