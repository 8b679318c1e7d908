package profileapi

import "strings"

// ExtractMediumUsername returns the handle after "@" in a Medium profile URL,
// or "" when there is none.
func ExtractMediumUsername(rawURL string) string {
	i := strings.IndexByte(rawURL, '@')
	if i < 0 {
		return ""
	}
	rest := rawURL[i+1:]
	if j := strings.IndexAny(rest, "/?"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// ExtractLinkedInUsername returns the part of a LinkedIn profile URL after
// "in/" with slashes removed, or "" when the URL has no "in/" segment.
func ExtractLinkedInUsername(rawURL string) string {
	i := strings.LastIndex(rawURL, "in/")
	if i < 0 {
		return ""
	}
	rest := rawURL[i+len("in/"):]
	if j := strings.IndexAny(rest, "?#"); j >= 0 {
		rest = rest[:j]
	}
	return strings.ReplaceAll(rest, "/", "")
}
