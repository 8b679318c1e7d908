package domain

// SocialAccount is a linked account on a profile. Provider is a lowercase tag;
// "generic" entries need URL inspection to find the real platform.
type SocialAccount struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type Achievements struct {
	TotalContributions        int `json:"total_contributions"`
	RepositoriesContributedTo int `json:"repositories_contributed_to"`
}

type SEOContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// Profile is a developer's public identity as returned by the Profile API.
type Profile struct {
	Username           string          `json:"username"`
	Name               string          `json:"name"`
	Bio                string          `json:"bio"`
	Location           string          `json:"location"`
	AvatarURL          string          `json:"avatar_url"`
	ProfileURL         string          `json:"profile_url"`
	Followers          int             `json:"followers"`
	Following          int             `json:"following"`
	PublicRepos        int             `json:"public_repos"`
	PullRequestsMerged int             `json:"pull_requests_merged"`
	IssuesClosed       int             `json:"issues_closed"`
	Achievements       Achievements    `json:"achievements"`
	SocialAccounts     []SocialAccount `json:"social_accounts"`
	ReadmeContent      string          `json:"readme_content"`
	About              string          `json:"about"`
	SEO                SEOContent      `json:"seo"`
	Cached             bool            `json:"cached"`
}

// GitHubUser is the subset of the public GitHub user payload the site reads.
type GitHubUser struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	HTMLURL     string  `json:"html_url"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}
