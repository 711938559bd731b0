package period_test

import (
	"testing"
	"time"

	"github.com/teabook/teabook-api/pkg/period"
)

// 2024-06-12 is a Wednesday.
var wednesday = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    period.Period
		wantErr bool
	}{
		{in: "", want: period.PeriodToday},
		{in: "today", want: period.PeriodToday},
		{in: "week", want: period.PeriodWeek},
		{in: "month", want: period.PeriodMonth},
		{in: "overall", want: period.PeriodOverall},
		{in: "yearly", wantErr: true},
		{in: "Today", wantErr: true},
	}
	for _, tt := range tests {
		got, err := period.Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateBounds(t *testing.T) {
	tests := []struct {
		p         period.Period
		wantStart string
		wantEnd   string
	}{
		{p: period.PeriodToday, wantStart: "2024-06-12", wantEnd: "2024-06-12"},
		{p: period.PeriodWeek, wantStart: "2024-06-10", wantEnd: "2024-06-12"},
		{p: period.PeriodMonth, wantStart: "2024-06-01", wantEnd: "2024-06-12"},
		{p: period.PeriodOverall, wantStart: "", wantEnd: "2024-06-12"},
	}
	for _, tt := range tests {
		start, end := period.DateBounds(tt.p, wednesday)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("DateBounds(%s) = %q..%q, want %q..%q", tt.p, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestTimeBounds(t *testing.T) {
	start, end := period.TimeBounds(period.PeriodToday, wednesday)
	if !start.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("today start = %v, want midnight", start)
	}
	if !end.Equal(wednesday) {
		t.Errorf("end = %v, want now", end)
	}

	start, _ = period.TimeBounds(period.PeriodWeek, wednesday)
	if !start.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v, want Monday midnight", start)
	}

	start, _ = period.TimeBounds(period.PeriodOverall, wednesday)
	if !start.IsZero() {
		t.Errorf("overall start = %v, want zero time", start)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday",
			in:   wednesday,
			want: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday stays put",
			in:   time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday rolls back to previous monday",
			in:   time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := period.StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
