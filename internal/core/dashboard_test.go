package core

import (
	"testing"
	"time"
)

func TestBuildDashboardEmpty(t *testing.T) {
	today := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	d := BuildDashboard(nil, today, FallbackToToday)
	if d.MonthMinutes != 0 || d.MonthAmount != 0 || d.Progress != 0 || d.AveragePerDay != 0 {
		t.Fatalf("empty store must yield zero aggregates: %+v", d)
	}
	if len(d.ProjectLabels) != 0 || len(d.ProjectMinutes) != 0 || len(d.Recent) != 0 {
		t.Fatalf("empty store must yield empty sequences: %+v", d)
	}
	if d.StartOfMonth != "2025-08-01" || d.EndOfMonth != "2025-08-31" {
		t.Fatalf("month bounds wrong: %s .. %s", d.StartOfMonth, d.EndOfMonth)
	}
	if d.ElapsedDays != 15 {
		t.Fatalf("elapsed days: expected 15, got %d", d.ElapsedDays)
	}
}

func TestBuildDashboardMonthAggregates(t *testing.T) {
	today := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Name: "a", Amount: 3, UsageFrequency: "daily", UsageMinutes: 30, CreatedAt: "2025-08-01"},
		{Name: "b", Amount: 4, UsageFrequency: "daily", UsageMinutes: 30, CreatedAt: "2025-08-05"},
		{Name: "c", Amount: 5, UsageFrequency: "weekly", UsageMinutes: 60, CreatedAt: "2025-08-09"},
		{Name: "old", Amount: 100, UsageFrequency: "once", UsageMinutes: 500, CreatedAt: "2025-07-31"},
	}

	d := BuildDashboard(records, today, FallbackToToday)
	if d.MonthMinutes != 120 {
		t.Fatalf("month minutes: expected 120, got %d", d.MonthMinutes)
	}
	if d.MonthAmount != 12 {
		t.Fatalf("month amount: expected 12, got %v", d.MonthAmount)
	}
	if d.TotalMinutes != 620 || d.TotalAmount != 112 {
		t.Fatalf("lifetime totals wrong: %d minutes, %v amount", d.TotalMinutes, d.TotalAmount)
	}
	if d.MonthMinutes > d.TotalMinutes {
		t.Fatalf("month minutes exceed total: %d > %d", d.MonthMinutes, d.TotalMinutes)
	}
	// 120 minutes against the 60-minute goal caps at 100
	if d.Progress != 100 {
		t.Fatalf("progress: expected 100, got %d", d.Progress)
	}
	if d.AveragePerDay != 12 { // 120 minutes / 10 elapsed days
		t.Fatalf("average per day: expected 12, got %v", d.AveragePerDay)
	}
}

func TestBuildDashboardProgressRounds(t *testing.T) {
	today := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Name: "a", UsageMinutes: 20, CreatedAt: "2025-08-02"},
	}
	d := BuildDashboard(records, today, FallbackToToday)
	if d.Progress != 33 { // round(20/60*100)
		t.Fatalf("progress: expected 33, got %d", d.Progress)
	}
}

func TestBuildDashboardUnparseableDateCountsAsToday(t *testing.T) {
	today := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Name: "ghost", Amount: 7, UsageMinutes: 45, CreatedAt: "not-a-date"},
	}

	// The record was entered who-knows-when, but the fallback policy dates
	// it today, so it is always part of the current month's aggregates.
	d := BuildDashboard(records, today, FallbackToToday)
	if d.MonthMinutes != 45 || d.MonthAmount != 7 {
		t.Fatalf("unparseable date must fall inside the month: %+v", d)
	}
	if len(d.Recent) != 1 || d.Recent[0].Index != 0 {
		t.Fatalf("record missing from recent list: %+v", d.Recent)
	}
}

func TestBuildDashboardProjectRanking(t *testing.T) {
	today := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Name: "editor", UsageMinutes: 10, CreatedAt: "2025-08-01"},
		{Name: "game", UsageMinutes: 50, CreatedAt: "2025-08-02"},
		{Name: "editor", UsageMinutes: 30, CreatedAt: "2025-08-03"},
		{Name: "music", UsageMinutes: 40, CreatedAt: "2020-01-01"}, // lifetime, still ranked
	}

	// game leads outright; editor and music tie at 40 and editor was seen first
	d := BuildDashboard(records, today, FallbackToToday)
	wantLabels := []string{"game", "editor", "music"}
	wantMinutes := []int{50, 40, 40}
	if len(d.ProjectLabels) != len(wantLabels) {
		t.Fatalf("expected %d projects, got %v", len(wantLabels), d.ProjectLabels)
	}
	for i := range wantLabels {
		if d.ProjectLabels[i] != wantLabels[i] || d.ProjectMinutes[i] != wantMinutes[i] {
			t.Fatalf("rank %d: expected %s/%d, got %s/%d",
				i, wantLabels[i], wantMinutes[i], d.ProjectLabels[i], d.ProjectMinutes[i])
		}
	}
}

func TestBuildDashboardRecentOrderAndLimit(t *testing.T) {
	today := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{Name: "r0", CreatedAt: "2025-08-01"},
		{Name: "r1", CreatedAt: "2025-08-05"},
		{Name: "r2", CreatedAt: "2025-08-05"}, // same day as r1, keeps input order
		{Name: "r3", CreatedAt: "2025-08-09"},
		{Name: "r4", CreatedAt: "2025-08-02"},
		{Name: "r5", CreatedAt: "2025-08-08"},
	}

	d := BuildDashboard(records, today, FallbackToToday)
	if len(d.Recent) != RecentLimit {
		t.Fatalf("expected %d recent records, got %d", RecentLimit, len(d.Recent))
	}
	wantOrder := []int{3, 5, 1, 2, 4}
	for i, want := range wantOrder {
		if d.Recent[i].Index != want {
			t.Fatalf("recent[%d]: expected index %d, got %d", i, want, d.Recent[i].Index)
		}
	}
}

func TestBuildDashboardDecemberRollover(t *testing.T) {
	today := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	d := BuildDashboard(nil, today, FallbackToToday)
	if d.StartOfMonth != "2025-12-01" || d.EndOfMonth != "2025-12-31" {
		t.Fatalf("december bounds wrong: %s .. %s", d.StartOfMonth, d.EndOfMonth)
	}
}
