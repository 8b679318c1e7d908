package profileapi

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"devb-web/internal/domain"
)

const previewLength = 200

var imgSrcRe = regexp.MustCompile(`(?i)<img[^>]+src="([^">]+)"`)

type rssFeed struct {
	Status string    `json:"status"`
	Items  []rssItem `json:"items"`
}

type rssItem struct {
	Title       string   `json:"title"`
	PubDate     string   `json:"pubDate"`
	Link        string   `json:"link"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// MediumBlogs fetches a Medium author's recent posts through the rss2json bridge.
func (c *Client) MediumBlogs(ctx context.Context, username string) []domain.MediumBlog {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil
	}
	q := url.Values{}
	q.Set("rss_url", "https://medium.com/feed/@"+username)

	var feed rssFeed
	if err := c.getJSON(ctx, c.RSS2JSONURL+"?"+q.Encode(), false, &feed); err != nil {
		c.logger.Error("profileapi: medium fetch failed", "username", username, "error", err)
		return nil
	}

	posts := make([]domain.MediumBlog, 0, len(feed.Items))
	for _, it := range feed.Items {
		post := domain.MediumBlog{
			Title:      it.Title,
			Link:       it.Link,
			PubDate:    it.PubDate,
			Categories: it.Categories,
			Thumbnail:  it.Thumbnail,
			Preview:    c.preview(it),
		}
		if post.Thumbnail == "" {
			post.Thumbnail = firstImage(it.Description)
		}
		posts = append(posts, post)
	}
	return posts
}

func (c *Client) preview(it rssItem) string {
	if it.Description == "" {
		return ""
	}
	var text string
	pageURL, _ := url.Parse(it.Link)
	article, err := readability.FromReader(strings.NewReader(it.Description), pageURL)
	if err != nil {
		c.logger.Debug("profileapi: readability failed, using plain text", "link", it.Link, "error", err)
	} else {
		text = strings.Join(strings.Fields(article.TextContent), " ")
	}
	// short descriptions often have too little content for readability
	if text == "" {
		text = plainText(it.Description)
	}
	return truncate(text, previewLength)
}

// plainText returns the text nodes of an HTML fragment joined by single spaces.
func plainText(fragment string) string {
	var parts []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.TextToken:
			parts = append(parts, string(z.Text()))
		}
	}
}

func firstImage(fragment string) string {
	if m := imgSrcRe.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "..."
}
