package domain

type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// ContributionsData is the third-party contribution graph payload: totals keyed by year.
type ContributionsData struct {
	Total         map[string]int    `json:"total"`
	Contributions []ContributionDay `json:"contributions"`
}
