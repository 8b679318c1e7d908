package domain

import (
	"encoding/json"
	"fmt"
)

// Project is a repository summary. Ordering is whatever the API returns.
type Project struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Score       *float64 `json:"score"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    string   `json:"language"`
	URL         string   `json:"url"`
	UpdatedAt   string   `json:"updatedAt"`
	IsPinned    bool     `json:"isPinned"`
	Homepage    *string  `json:"homepage"`
}

// LanguageUsage is encoded on the wire as a [name, count] pair.
type LanguageUsage struct {
	Name  string
	Count float64
}

func (l *LanguageUsage) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("language usage: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &l.Name); err != nil {
		return fmt.Errorf("language usage name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &l.Count); err != nil {
		return fmt.Errorf("language usage count: %w", err)
	}
	return nil
}

func (l LanguageUsage) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{l.Name, l.Count})
}

type UserProject struct {
	TopProjects  []Project       `json:"top_projects"`
	TopLanguages []LanguageUsage `json:"top_languages"`
}
