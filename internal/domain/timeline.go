package domain

type TimelineDuration struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// TimelineItem is the render-ready shape of an experience or education entry.
type TimelineItem struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Location string           `json:"location"`
	Duration TimelineDuration `json:"duration"`
	Logo     string           `json:"logo,omitempty"`
}
