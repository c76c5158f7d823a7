package core

import "time"

const (
	// WindowDays is the default trailing window for the daily chart.
	WindowDays = 7

	// BarWidth is the display width the largest bar scales to.
	BarWidth = 24
)

// DayUsage is one bar of the daily chart: total usage minutes recorded on
// Date and the bar magnitude relative to the busiest day in the window.
type DayUsage struct {
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	BarLength int    `json:"bar_length"`
}

// DailyUsage totals usage minutes per calendar day over the trailing window
// [reference-(windowDays-1), reference], oldest first. Every day of the
// window is present even with zero minutes. A record counts for a day only
// when its raw created_at string equals the day's ISO form; records outside
// the window (or with unparseable dates) are ignored, not redistributed.
func DailyUsage(records []Record, reference time.Time, windowDays, barWidth int) []DayUsage {
	ref := Day(reference)
	days := make([]DayUsage, windowDays)
	perDay := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		date := ref.AddDate(0, 0, i-windowDays+1).Format(DateLayout)
		days[i] = DayUsage{Date: date}
		perDay[date] = i
	}

	for _, r := range records {
		if i, ok := perDay[r.CreatedAt]; ok {
			days[i].Minutes += r.UsageMinutes
		}
	}

	max := 0
	for _, d := range days {
		if d.Minutes > max {
			max = d.Minutes
		}
	}
	if max == 0 {
		return days
	}
	for i := range days {
		days[i].BarLength = days[i].Minutes * barWidth / max
	}
	return days
}
