package valueobject

import (
	"fmt"
	"sort"
)

const (
	// MinDayOfMonth is the smallest valid day-of-month.
	MinDayOfMonth = 1
	// MaxDayOfMonth is the largest valid day-of-month.
	MaxDayOfMonth = 31
)

// DaySet is an ordered set of days of month (1-31), ascending and without duplicates.
type DaySet []int

// NewDaySet validates days and returns them as a sorted, de-duplicated set.
func NewDaySet(days []int) (DaySet, error) {
	seen := make(map[int]bool, len(days))
	set := make(DaySet, 0, len(days))
	for _, day := range days {
		if day < MinDayOfMonth || day > MaxDayOfMonth {
			return nil, fmt.Errorf("day of month %d outside %d-%d", day, MinDayOfMonth, MaxDayOfMonth)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		set = append(set, day)
	}
	sort.Ints(set)
	return set, nil
}

// IsEmpty reports whether the set has no days.
func (s DaySet) IsEmpty() bool {
	return len(s) == 0
}

// FirstOnOrAfter returns the smallest day in the set that is >= day.
func (s DaySet) FirstOnOrAfter(day int) (int, bool) {
	i := sort.SearchInts(s, day)
	if i < len(s) {
		return s[i], true
	}
	return 0, false
}

// First returns the smallest day in the set.
func (s DaySet) First() (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// Ints returns a copy of the days as a plain slice.
func (s DaySet) Ints() []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
