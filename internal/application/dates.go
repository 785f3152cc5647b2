package application

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

const DateLayout = "2006-01-02"

var (
	isoDatePattern       = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	numericDatePattern   = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})$`)
	relativePattern      = regexp.MustCompile(`^in (\w+) (day|days|week|weeks|month|months|year|years)$`)
	fromNowPattern       = regexp.MustCompile(`^(\w+) (day|days|week|weeks|month|months|year|years) (?:from now|from today|later)$`)
	monthFirstPattern    = regexp.MustCompile(`^([a-z]+)\.? (\d{1,2})(?:st|nd|rd|th)?(?:,? (\d{4}))?$`)
	dayFirstPattern      = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?(?: of)? ([a-z]+)\.?(?:,? (\d{4}))?$`)
	clock24Pattern       = regexp.MustCompile(`^(\d{1,2})[:h.](\d{2})$`)
	clockMeridiemPattern = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))? ?(am|pm|a\.m\.|p\.m\.)$`)
)

var (
	numberWords = numberTable()
	weekdays    = weekdayTable()
	months      = monthTable()
)

// numberTable maps "one".."twelve" (and "a"/"an") to their values.
func numberTable() map[string]int {
	table := map[string]int{"a": 1, "an": 1}
	for i, word := range strings.Fields("one two three four five six seven eight nine ten eleven twelve") {
		table[word] = i + 1
	}
	return table
}

func weekdayTable() map[string]time.Weekday {
	table := map[string]time.Weekday{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		table[name] = day
		table[name[:3]] = day
	}
	table["tues"] = time.Tuesday
	table["thurs"] = time.Thursday
	return table
}

func monthTable() map[string]time.Month {
	table := map[string]time.Month{}
	for month := time.January; month <= time.December; month++ {
		name := strings.ToLower(month.String())
		table[name] = month
		table[name[:3]] = month
	}
	table["sept"] = time.September
	return table
}

// ParseDate resolves a natural-language date relative to now. The result is
// midnight in now's location.
func ParseDate(expression string, now time.Time) (time.Time, error) {
	text := normalizeDateExpression(expression)
	if text == "" {
		return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "empty date"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch text {
	case "today", "tonight":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "day after tomorrow", "the day after tomorrow":
		return today.AddDate(0, 0, 2), nil
	case "next week":
		return today.AddDate(0, 0, 7), nil
	case "next month":
		return addMonths(today, 1), nil
	case "next year":
		return addMonths(today, 12), nil
	}

	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		return buildDate(expression, atoi(m[1]), atoi(m[2]), atoi(m[3]), now.Location())
	}

	if m := numericDatePattern.FindStringSubmatch(text); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		switch {
		case first > 12 && second <= 12:
			return buildDate(expression, year, second, first, now.Location())
		case second > 12 && first <= 12:
			return buildDate(expression, year, first, second, now.Location())
		case first == second:
			return buildDate(expression, year, first, second, now.Location())
		default:
			return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "day and month order is ambiguous"}
		}
	}

	if date, ok := parseWeekdayExpression(text, today); ok {
		return date, nil
	}

	if m := relativePattern.FindStringSubmatch(text); m != nil {
		return offsetDate(expression, today, m[1], m[2])
	}
	if m := fromNowPattern.FindStringSubmatch(text); m != nil {
		return offsetDate(expression, today, m[1], m[2])
	}

	if m := monthFirstPattern.FindStringSubmatch(text); m != nil {
		if month, ok := months[m[1]]; ok {
			return calendarDate(expression, today, month, atoi(m[2]), m[3])
		}
	}
	if m := dayFirstPattern.FindStringSubmatch(text); m != nil {
		if month, ok := months[m[2]]; ok {
			return calendarDate(expression, today, month, atoi(m[1]), m[3])
		}
	}

	return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "unrecognized date"}
}

// ParseClock normalizes a time of day to HH:MM.
func ParseClock(expression string) (string, error) {
	text := strings.ToLower(strings.TrimSpace(expression))
	text = strings.TrimPrefix(text, "at ")
	switch text {
	case "noon", "midday":
		return "12:00", nil
	case "midnight":
		return "00:00", nil
	}

	if m := clock24Pattern.FindStringSubmatch(text); m != nil {
		hour, minute := atoi(m[1]), atoi(m[2])
		if hour > 23 || minute > 59 {
			return "", &domain.DateParseError{Expression: expression, Reason: "time out of range"}
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	if m := clockMeridiemPattern.FindStringSubmatch(text); m != nil {
		hour, minute := atoi(m[1]), 0
		if m[2] != "" {
			minute = atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return "", &domain.DateParseError{Expression: expression, Reason: "time out of range"}
		}
		pm := strings.HasPrefix(m[3], "p")
		if hour == 12 {
			hour = 0
		}
		if pm {
			hour += 12
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	return "", &domain.DateParseError{Expression: expression, Reason: "unrecognized time"}
}

// ShiftClock moves an HH:MM time by minutes. dayOffset reports how many days
// the result crossed.
func ShiftClock(clock string, minutes int) (string, int, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return "", 0, &domain.DateParseError{Expression: clock, Reason: "expected HH:MM"}
	}
	total := parsed.Hour()*60 + parsed.Minute() + minutes
	dayOffset := 0
	for total < 0 {
		total += 24 * 60
		dayOffset--
	}
	for total >= 24*60 {
		total -= 24 * 60
		dayOffset++
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), dayOffset, nil
}

func normalizeDateExpression(expression string) string {
	text := strings.ToLower(strings.TrimSpace(expression))
	text = strings.TrimRight(text, ".!?")
	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimPrefix(text, "on ")
	return text
}

func parseWeekdayExpression(text string, today time.Time) (time.Time, bool) {
	modifier := ""
	name := strings.TrimPrefix(text, "this coming ")
	if parts := strings.SplitN(name, " ", 2); len(parts) == 2 {
		switch parts[0] {
		case "this", "next", "last", "coming":
			modifier, name = parts[0], parts[1]
		}
	}
	target, ok := weekdays[name]
	if !ok {
		return time.Time{}, false
	}

	delta := (int(target) - int(today.Weekday()) + 7) % 7
	switch modifier {
	case "next":
		if delta == 0 {
			delta = 7
		}
	case "last":
		delta -= 7
		if delta == 0 {
			delta = -7
		}
	}
	return today.AddDate(0, 0, delta), true
}

func offsetDate(expression string, today time.Time, amount, unit string) (time.Time, error) {
	n, ok := parseCount(amount)
	if !ok {
		return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "unrecognized amount"}
	}
	switch strings.TrimSuffix(unit, "s") {
	case "day":
		return today.AddDate(0, 0, n), nil
	case "week":
		return today.AddDate(0, 0, 7*n), nil
	case "month":
		return addMonths(today, n), nil
	case "year":
		return addMonths(today, 12*n), nil
	}
	return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "unrecognized unit"}
}

func calendarDate(expression string, today time.Time, month time.Month, day int, year string) (time.Time, error) {
	if year != "" {
		return buildDate(expression, atoi(year), int(month), day, today.Location())
	}
	date, err := buildDate(expression, today.Year(), int(month), day, today.Location())
	if err != nil {
		return time.Time{}, err
	}
	if date.Before(today) {
		return buildDate(expression, today.Year()+1, int(month), day, today.Location())
	}
	return date, nil
}

func buildDate(expression string, year, month, day int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "date out of range"}
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Day() != day {
		return time.Time{}, &domain.DateParseError{Expression: expression, Reason: "no such day in month"}
	}
	return date, nil
}

// addMonths clamps to the last day of the target month instead of overflowing.
func addMonths(date time.Time, n int) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := date.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, date.Location())
}

func parseCount(amount string) (int, bool) {
	if n, ok := numberWords[amount]; ok {
		return n, true
	}
	n, err := strconv.Atoi(amount)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
