package model

// Go models that match resume.schema.json, used for validation and rendering.

type Header struct {
	Name        string `json:"name"`
	Headline    string `json:"headline,omitempty"`
	Location    string `json:"location,omitempty"`
	GitHubURL   string `json:"github_url"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Homepage    string `json:"homepage,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
}

type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Period string `json:"period"`
}

type Achievement struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Resume is the assembled document for one developer.
type Resume struct {
	Username     string        `json:"username"`
	Header       Header        `json:"header"`
	Summary      string        `json:"summary"`
	Experience   []Experience  `json:"experience"`
	Projects     []Project     `json:"projects"`
	Education    []Education   `json:"education"`
	Skills       []string      `json:"skills"`
	Achievements []Achievement `json:"achievements"`
	Footer       string        `json:"footer"`
}
