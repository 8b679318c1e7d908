package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"time"

	repo "devb-web/internal/adapter/repository"
	"devb-web/internal/compare"
	"devb-web/internal/domain"
	"devb-web/internal/model"
	"devb-web/internal/resume"
	"devb-web/internal/social"
	"devb-web/internal/timeline"
)

//go:embed templates/*.html
var templatesFS embed.FS

type landingView struct {
	Query   string
	Message string
}

type memeView struct {
	Me      string
	Them    string
	Message string
	Result  *compare.Result
}

type notFoundView struct {
	Username string
}

type socialLink struct {
	Label    string
	Platform string
	URL      string
}

type profileSection struct {
	Profile      *domain.Profile
	Socials      []socialLink
	Achievements []model.Achievement
}

type projectsSection struct {
	Username  string
	Projects  []domain.Project
	Languages []domain.LanguageUsage
}

type timelineSection struct {
	Experience []domain.TimelineItem
	Education  []domain.TimelineItem
}

type blogsSection struct {
	MediumUsername string
	Blogs          []domain.MediumBlog
}

type portfolioView struct {
	Username string
	Title    string
	Banner   domain.BannerData
	Profile  template.HTML
	Projects template.HTML
	Timeline template.HTML
	Blogs    template.HTML
}

type pages struct {
	tpl    *template.Template
	logger *slog.Logger
}

var funcs = template.FuncMap{
	"endLabel": timeline.EndLabel,
	"pubDate":  pubDate,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

func newPages(logger *slog.Logger) *pages {
	tpl := template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
	return &pages{tpl: tpl, logger: logger}
}

func (p *pages) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := p.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// section renders one portfolio section. A failing section renders as nothing.
func (p *pages) section(name string, data interface{}) template.HTML {
	out, err := p.render(name, data)
	if err != nil {
		p.logger.Warn("http: section render failed", "section", name, "error", err)
		return ""
	}
	return template.HTML(out)
}

func (p *pages) portfolio(agg *repo.AggregateResult) portfolioView {
	view := portfolioView{Username: agg.Username, Title: agg.Username}
	if agg.Profile.Name != "" {
		view.Title = agg.Profile.Name
	}

	links := make([]socialLink, 0, len(agg.Profile.SocialAccounts))
	for _, a := range agg.Profile.SocialAccounts {
		links = append(links, socialLink{Label: social.Label(a), Platform: social.Platform(a), URL: a.URL})
	}
	view.Profile = p.section("section-profile", profileSection{
		Profile:      agg.Profile,
		Socials:      links,
		Achievements: resume.Achievements(agg.Profile),
	})

	if agg.Projects != nil && len(agg.Projects.TopProjects) > 0 {
		view.Projects = p.section("section-projects", projectsSection{
			Username:  agg.Username,
			Projects:  agg.Projects.TopProjects,
			Languages: agg.Projects.TopLanguages,
		})
	}

	if agg.LinkedIn != nil {
		tl := timelineSection{
			Experience: timeline.Normalize(domain.ExperienceRecords(agg.LinkedIn.Experience)),
			Education:  timeline.Normalize(domain.EducationRecords(agg.LinkedIn.Education)),
		}
		if len(tl.Experience) > 0 || len(tl.Education) > 0 {
			view.Timeline = p.section("section-timeline", tl)
		}
	}

	if len(agg.Medium) > 0 {
		view.Blogs = p.section("section-blogs", blogsSection{MediumUsername: agg.MediumUsername, Blogs: agg.Medium})
	}
	return view
}

// pubDate formats rss2json's "2006-01-02 15:04:05" timestamps; anything else
// is shown as given.
func pubDate(raw string) string {
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}
