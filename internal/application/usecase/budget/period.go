// Package budget contains budget-related use cases.
package budget

import (
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// Granularity is a preset budget period length.
type Granularity string

const (
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

var monthAbbreviations = map[time.Month]string{
	time.January: "Jan", time.February: "Feb", time.March: "Mar",
	time.April: "Apr", time.May: "May", time.June: "Jun",
	time.July: "Jul", time.August: "Aug", time.September: "Sep",
	time.October: "Oct", time.November: "Nov", time.December: "Dec",
}

// IsValid reports whether g is a known granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityWeekly || g == GranularityMonthly || g == GranularityQuarterly
}

// PeriodBounds returns the inclusive period of the given granularity containing date.
// Weeks start on Monday.
func PeriodBounds(date valueobject.Date, granularity Granularity) (start, end valueobject.Date) {
	switch granularity {
	case GranularityWeekly:
		start = weekStart(date)
		return start, start.AddDays(6)
	case GranularityQuarterly:
		quarter := (int(date.Month()) - 1) / 3
		start = valueobject.NewDate(date.Year(), time.Month(quarter*3+1), 1)
		return start, valueobject.NewDate(start.Year(), start.Month()+3, 1).AddDays(-1)
	case GranularityMonthly:
		return date.FirstOfMonth(), date.EndOfMonth()
	default:
		return date, date
	}
}

// PeriodLabel returns a short name for the period, used when a budget has no name.
// Formats: "W12 2025", "Mar 2025", "Q1 2025".
func PeriodLabel(date valueobject.Date, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		year, week := date.Time().ISOWeek()
		return fmt.Sprintf("W%d %d", week, year)
	case GranularityQuarterly:
		return fmt.Sprintf("Q%d %d", (int(date.Month())-1)/3+1, date.Year())
	default:
		return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
	}
}

func weekStart(date valueobject.Date) valueobject.Date {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return date.AddDays(-(weekday - 1))
}
