package domain

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type BasicInfo struct {
	FullName    string   `json:"full_name"`
	Headline    string   `json:"headline"`
	Location    Location `json:"location"`
	Summary     string   `json:"summary"`
	ProfileURL  string   `json:"profile_url"`
	Connections int      `json:"connections"`
}

// YearMonth is a point in a duration. Month is 1-12 when present.
type YearMonth struct {
	Year  int  `json:"year"`
	Month *int `json:"month,omitempty"`
}

// Duration spans Start to End; a nil End means the entry is ongoing.
type Duration struct {
	Start YearMonth  `json:"start"`
	End   *YearMonth `json:"end,omitempty"`
}

type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description *string  `json:"description"`
	Duration    Duration `json:"duration"`
}

type Education struct {
	School   string   `json:"school"`
	Degree   string   `json:"degree"`
	Field    *string  `json:"field"`
	Duration Duration `json:"duration"`
}

type LinkedInProfile struct {
	BasicInfo  BasicInfo    `json:"basic_info"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// CareerRecord is either an Experience or an Education entry.
type CareerRecord interface {
	careerRecord()
}

func (Experience) careerRecord() {}
func (Education) careerRecord()  {}

// ExperienceRecords widens a slice of experiences for timeline normalization.
func ExperienceRecords(items []Experience) []CareerRecord {
	out := make([]CareerRecord, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}

// EducationRecords widens a slice of education entries for timeline normalization.
func EducationRecords(items []Education) []CareerRecord {
	out := make([]CareerRecord, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}
