// Package timeline turns LinkedIn experience and education entries into
// render-ready timeline items.
package timeline

import (
	"strconv"
	"unicode/utf8"

	"devb-web/internal/domain"
)

// PresentLabel is shown in place of a missing end date.
const PresentLabel = "Present"

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the abbreviated month name for 1-12.
func MonthName(month int) (string, bool) {
	if month < 1 || month > 12 {
		return "", false
	}
	return monthNames[month-1], true
}

// Normalize converts records in order. An empty input yields an empty, non-nil slice.
func Normalize(records []domain.CareerRecord) []domain.TimelineItem {
	out := make([]domain.TimelineItem, 0, len(records))
	for _, r := range records {
		switch rec := r.(type) {
		case domain.Experience:
			out = append(out, FromExperience(rec))
		case domain.Education:
			out = append(out, FromEducation(rec))
		}
	}
	return out
}

func FromExperience(exp domain.Experience) domain.TimelineItem {
	item := domain.TimelineItem{
		Title:    exp.Title,
		Subtitle: exp.Company,
		Location: exp.Location,
		Duration: domain.TimelineDuration{Start: yearMonth(exp.Duration.Start)},
		Logo:     firstChar(exp.Company),
	}
	if exp.Duration.End != nil && exp.Duration.End.Year > 0 {
		end := yearMonth(*exp.Duration.End)
		item.Duration.End = &end
	}
	return item
}

func FromEducation(edu domain.Education) domain.TimelineItem {
	item := domain.TimelineItem{
		Title:    edu.Degree,
		Subtitle: edu.School,
		Duration: domain.TimelineDuration{Start: strconv.Itoa(edu.Duration.Start.Year)},
		Logo:     firstChar(edu.School),
	}
	if edu.Field != nil {
		item.Location = *edu.Field
	}
	if edu.Duration.End != nil && edu.Duration.End.Year > 0 {
		end := strconv.Itoa(edu.Duration.End.Year)
		item.Duration.End = &end
	}
	return item
}

// EndLabel is the display value for an item's end date.
func EndLabel(item domain.TimelineItem) string {
	if item.Duration.End == nil {
		return PresentLabel
	}
	return *item.Duration.End
}

func yearMonth(ym domain.YearMonth) string {
	s := strconv.Itoa(ym.Year)
	if ym.Month != nil {
		if name, ok := MonthName(*ym.Month); ok {
			s += " " + name
		}
	}
	return s
}

func firstChar(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(r)
}
