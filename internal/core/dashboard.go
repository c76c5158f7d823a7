package core

import (
	"math"
	"sort"
	"time"
)

const (
	// DailyGoalMinutes is the fixed usage goal the progress bar measures
	// against: 60 minutes count as 100%.
	DailyGoalMinutes = 60

	// RecentLimit caps the recent-records list on the dashboard.
	RecentLimit = 5
)

// IndexedRecord pairs a record with its position in the stored sequence,
// which is the only handle update operations accept.
type IndexedRecord struct {
	Index int `json:"index"`
	Record
}

// Dashboard is the month-to-date view: aggregate totals for the current
// month and overall, a goal-progress figure, the lifetime per-project usage
// ranking as parallel label/minute slices for chart rendering, and the five
// most recent records.
type Dashboard struct {
	StartOfMonth   string          `json:"start_of_month"`
	EndOfMonth     string          `json:"end_of_month"`
	MonthMinutes   int             `json:"month_minutes"`
	MonthAmount    float64         `json:"month_amount"`
	TotalMinutes   int             `json:"total_minutes"`
	TotalAmount    float64         `json:"total_amount"`
	ElapsedDays    int             `json:"elapsed_days"`
	AveragePerDay  float64         `json:"average_per_day"`
	Progress       int             `json:"progress"`
	ProjectLabels  []string        `json:"project_labels"`
	ProjectMinutes []int           `json:"project_minutes"`
	Recent         []IndexedRecord `json:"recent"`
}

// BuildDashboard derives the dashboard for today's month. Record dates run
// through the given policy, so an unparseable created_at counts as today
// and always lands inside the current month. Progress is month-to-date
// minutes against DailyGoalMinutes, capped at 100; it is a goal bar, not a
// per-day average.
func BuildDashboard(records []Record, today time.Time, policy DatePolicy) Dashboard {
	day := Day(today)
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	d := Dashboard{
		StartOfMonth:   start.Format(DateLayout),
		EndOfMonth:     end.Format(DateLayout),
		ElapsedDays:    day.Day(),
		ProjectLabels:  []string{},
		ProjectMinutes: []int{},
		Recent:         []IndexedRecord{},
	}
	if d.ElapsedDays < 1 {
		d.ElapsedDays = 1
	}

	dates := make([]time.Time, len(records))
	for i, r := range records {
		dates[i] = policy(r.CreatedAt, day)

		d.TotalMinutes += r.UsageMinutes
		d.TotalAmount += r.Amount
		if !dates[i].Before(start) && !dates[i].After(end) {
			d.MonthMinutes += r.UsageMinutes
			d.MonthAmount += r.Amount
		}
	}

	if d.MonthMinutes > 0 {
		d.AveragePerDay = float64(d.MonthMinutes) / float64(d.ElapsedDays)
		p := int(math.Round(float64(d.MonthMinutes) / DailyGoalMinutes * 100))
		if p > 100 {
			p = 100
		}
		d.Progress = p
	}

	d.ProjectLabels, d.ProjectMinutes = rankByProject(records)
	d.Recent = recentRecords(records, dates)
	return d
}

// rankByProject sums usage minutes by record name over the whole history
// (a lifetime ranking, deliberately not limited to the current month),
// descending, with first-seen order breaking ties.
func rankByProject(records []Record) ([]string, []int) {
	index := make(map[string]int, len(records))
	labels := []string{}
	minutes := []int{}
	for _, r := range records {
		i, ok := index[r.Name]
		if !ok {
			i = len(labels)
			index[r.Name] = i
			labels = append(labels, r.Name)
			minutes = append(minutes, 0)
		}
		minutes[i] += r.UsageMinutes
	}

	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return minutes[order[a]] > minutes[order[b]]
	})

	outLabels := make([]string, len(labels))
	outMinutes := make([]int, len(minutes))
	for i, j := range order {
		outLabels[i] = labels[j]
		outMinutes[i] = minutes[j]
	}
	return outLabels, outMinutes
}

// recentRecords orders all records newest first by their normalized date,
// keeping original sequence order for same-day records, truncated to
// RecentLimit.
func recentRecords(records []Record, dates []time.Time) []IndexedRecord {
	out := make([]IndexedRecord, len(records))
	for i, r := range records {
		out[i] = IndexedRecord{Index: i, Record: r}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return dates[out[a].Index].After(dates[out[b].Index])
	})
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}
