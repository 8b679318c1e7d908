package domain

type MediumBlog struct {
	Title      string   `json:"title"`
	Link       string   `json:"link"`
	PubDate    string   `json:"pubDate"`
	Preview    string   `json:"preview"`
	Categories []string `json:"categories"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
}
