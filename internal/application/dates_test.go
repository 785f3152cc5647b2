package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		expression string
		want       string
	}{
		{expression: "today", want: "2026-03-02"},
		{expression: "Tomorrow", want: "2026-03-03"},
		{expression: "the day after tomorrow", want: "2026-03-04"},
		{expression: "next week", want: "2026-03-09"},
		{expression: "2026-06-14", want: "2026-06-14"},
		{expression: "2026/6/4", want: "2026-06-04"},
		{expression: "14/06/2026", want: "2026-06-14"},
		{expression: "06/14/2026", want: "2026-06-14"},
		{expression: "07/07/2026", want: "2026-07-07"},
		{expression: "saturday", want: "2026-03-07"},
		{expression: "next saturday", want: "2026-03-07"},
		{expression: "monday", want: "2026-03-02"},
		{expression: "next monday", want: "2026-03-09"},
		{expression: "last friday", want: "2026-02-27"},
		{expression: "on Friday.", want: "2026-03-06"},
		{expression: "in 3 days", want: "2026-03-05"},
		{expression: "in a week", want: "2026-03-09"},
		{expression: "two weeks from now", want: "2026-03-16"},
		{expression: "in 2 months", want: "2026-05-02"},
		{expression: "March 3rd", want: "2026-03-03"},
		{expression: "dec 12, 2027", want: "2027-12-12"},
		{expression: "14th of June", want: "2026-06-14"},
		{expression: "1st of March", want: "2027-03-01"},
		{expression: "sept 5", want: "2026-09-05"},
		{expression: "thurs", want: "2026-03-05"},
		{expression: "twelve days from now", want: "2026-03-14"},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := ParseDate(tt.expression, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
			assert.Equal(t, 0, got.Hour())
		})
	}
}

func TestParseDateRejectsUnclearExpressions(t *testing.T) {
	tests := []struct {
		expression string
		reason     string
	}{
		{expression: "", reason: "empty date"},
		{expression: "05/06/2026", reason: "day and month order is ambiguous"},
		{expression: "Feb 29", reason: "no such day in month"},
		{expression: "2026-13-01", reason: "date out of range"},
		{expression: "sometime soon", reason: "unrecognized date"},
		{expression: "in several days", reason: "unrecognized amount"},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			_, err := ParseDate(tt.expression, fixedNow)

			var dateErr *domain.DateParseError
			require.ErrorAs(t, err, &dateErr)
			assert.Equal(t, tt.expression, dateErr.Expression)
			assert.Equal(t, tt.reason, dateErr.Reason)
		})
	}
}

func TestParseDateClampsMonthEnd(t *testing.T) {
	now := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	got, err := ParseDate("next month", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", got.Format(DateLayout))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		expression string
		want       string
	}{
		{expression: "4pm", want: "16:00"},
		{expression: "4:30 PM", want: "16:30"},
		{expression: "12am", want: "00:00"},
		{expression: "12:15 pm", want: "12:15"},
		{expression: "9 a.m.", want: "09:00"},
		{expression: "at 9:05", want: "09:05"},
		{expression: "16h30", want: "16:30"},
		{expression: "noon", want: "12:00"},
		{expression: "midnight", want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := ParseClock(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"25:00", "13pm", "teatime"} {
		_, err := ParseClock(bad)
		var dateErr *domain.DateParseError
		assert.ErrorAs(t, err, &dateErr, bad)
	}
}

func TestShiftClock(t *testing.T) {
	tests := []struct {
		name      string
		clock     string
		minutes   int
		want      string
		dayOffset int
	}{
		{name: "same day", clock: "16:00", minutes: 30, want: "16:30"},
		{name: "past midnight", clock: "23:45", minutes: 30, want: "00:15", dayOffset: 1},
		{name: "before midnight", clock: "00:10", minutes: -20, want: "23:50", dayOffset: -1},
		{name: "earlier", clock: "19:30", minutes: -90, want: "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, offset, err := ShiftClock(tt.clock, tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dayOffset, offset)
		})
	}

	_, _, err := ShiftClock("4pm", 30)
	require.Error(t, err)
}
