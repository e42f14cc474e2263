package analysis

import (
	"errors"
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/store"
)

func TestFillDaysScenario(t *testing.T) {
	daily := []store.DailyMinutes{
		{Day: "2021-01-01", Minutes: 30},
		{Day: "2021-01-03", Minutes: 15},
	}

	filled, err := FillDays(daily, "2021-01-01", "2021-01-03")
	if err != nil {
		t.Fatalf("FillDays: %v", err)
	}

	want := []DailyActivity{
		{Date: "2021-01-01", Minutes: 30},
		{Date: "2021-01-02", Minutes: 0},
		{Date: "2021-01-03", Minutes: 15},
	}
	if len(filled) != len(want) {
		t.Fatalf("Expected %d days, got %d", len(want), len(filled))
	}
	for i := range want {
		if filled[i] != want[i] {
			t.Errorf("Day %d: expected %+v, got %+v", i, want[i], filled[i])
		}
	}
}

func TestFillDaysLengthAndNoGaps(t *testing.T) {
	filled, err := FillDays(nil, "2020-02-27", "2020-03-02")
	if err != nil {
		t.Fatalf("FillDays: %v", err)
	}
	// 2020 is a leap year: Feb 27, 28, 29, Mar 1, 2.
	if len(filled) != 5 {
		t.Fatalf("Expected 5 days, got %d", len(filled))
	}
	seen := make(map[string]bool)
	for _, d := range filled {
		if seen[d.Date] {
			t.Errorf("Duplicate date %s", d.Date)
		}
		seen[d.Date] = true
	}
	if !seen["2020-02-29"] {
		t.Error("Expected leap day to be present")
	}
}

func TestFillDaysSingleDay(t *testing.T) {
	filled, err := FillDays(nil, "2021-05-05", "2021-05-05")
	if err != nil {
		t.Fatalf("FillDays: %v", err)
	}
	if len(filled) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(filled))
	}
}

func TestFillDaysNoData(t *testing.T) {
	_, err := FillDays(nil, "", "")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}
}

func TestFillDaysReversedRange(t *testing.T) {
	_, err := FillDays(nil, "2021-01-02", "2021-01-01")
	if err == nil {
		t.Fatal("Expected error for reversed range")
	}
}

func TestFillDaysPreservesTotal(t *testing.T) {
	daily := []store.DailyMinutes{
		{Day: "2021-01-01", Minutes: 12.5},
		{Day: "2021-01-04", Minutes: 7.25},
		{Day: "2021-01-09", Minutes: 100},
	}
	filled, err := FillDays(daily, "2021-01-01", "2021-01-09")
	if err != nil {
		t.Fatalf("FillDays: %v", err)
	}
	var total float64
	for _, d := range filled {
		total += d.Minutes
	}
	if total != 119.75 {
		t.Errorf("Expected total 119.75 minutes, got %v", total)
	}
}
