package model

import (
	"strings"
	"time"
)

// MatchAll is the sentinel filter value meaning "no constraint".
const MatchAll = "all"

// DateRange selects records created within a window anchored to an
// injected reference time, so evaluation stays deterministic.
type DateRange string

// Valid date ranges
const (
	RangeAll     DateRange = "all"
	RangeToday   DateRange = "today"
	RangeWeek    DateRange = "week"
	RangeMonth   DateRange = "month"
	RangeQuarter DateRange = "quarter"
)

// Contains reports whether ts falls inside the window [lower, +inf)
// anchored to now. Unknown ranges behave like RangeAll.
func (r DateRange) Contains(ts, now time.Time) bool {
	var lower time.Time
	switch r {
	case RangeToday:
		lower = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeWeek:
		lower = now.AddDate(0, 0, -7)
	case RangeMonth:
		lower = now.AddDate(0, -1, 0)
	case RangeQuarter:
		lower = now.AddDate(0, -3, 0)
	default:
		return true
	}
	return !ts.Before(lower)
}

// ActiveFilter is the tri-state archived/active selector.
type ActiveFilter string

// Valid active filter values
const (
	ActiveAny  ActiveFilter = "all"
	ActiveOnly ActiveFilter = "active"
	Inactive   ActiveFilter = "inactive"
)

// Matches reports whether a record's active flag passes the selector.
func (f ActiveFilter) Matches(isActive bool) bool {
	switch f {
	case ActiveOnly:
		return isActive
	case Inactive:
		return !isActive
	default:
		return true
	}
}

// matchText reports whether term is a case-insensitive substring of any
// field. An empty term matches everything.
func matchText(term string, fields ...string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// matchValue reports whether a categorical filter passes. The empty
// string and MatchAll both mean unconstrained; otherwise equality is
// exact and case-sensitive.
func matchValue(filter, value string) bool {
	return filter == "" || filter == MatchAll || filter == value
}

// matchTags reports whether the record's tags intersect the wanted set
// (match-any). An empty wanted set matches everything.
func matchTags(want, have []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

// ContactFilter holds the contact list's filter selections. The zero
// value matches every record.
type ContactFilter struct {
	Search  string
	Stage   string
	Owner   string
	Company string
	Tags    []string
	Active  ActiveFilter
	Created DateRange
}

// Matches evaluates the conjunction of every filter dimension.
func (f ContactFilter) Matches(c Contact, now time.Time) bool {
	return matchText(f.Search, c.FirstName, c.LastName, c.Email, c.Company, c.JobTitle) &&
		matchValue(f.Stage, string(c.Stage)) &&
		matchValue(f.Owner, c.Owner) &&
		matchValue(f.Company, c.Company) &&
		matchTags(f.Tags, c.Tags) &&
		f.Active.Matches(c.IsActive) &&
		f.Created.Contains(c.CreatedAt, now)
}

// OpportunityFilter holds the opportunity list's filter selections.
type OpportunityFilter struct {
	Search  string
	Stage   string
	Owner   string
	Company string
	Tags    []string
	Created DateRange
}

func (f OpportunityFilter) Matches(o Opportunity, now time.Time) bool {
	return matchText(f.Search, o.Name, o.Company, o.Owner) &&
		matchValue(f.Stage, string(o.Stage)) &&
		matchValue(f.Owner, o.Owner) &&
		matchValue(f.Company, o.Company) &&
		matchTags(f.Tags, o.Tags) &&
		f.Created.Contains(o.CreatedAt, now)
}

// AccountFilter holds the account list's filter selections.
type AccountFilter struct {
	Search   string
	Type     string
	Industry string
	Owner    string
	Tags     []string
	Active   ActiveFilter
	Created  DateRange
}

func (f AccountFilter) Matches(a Account, now time.Time) bool {
	return matchText(f.Search, a.Name, a.Industry, a.Website, a.Owner) &&
		matchValue(f.Type, string(a.Type)) &&
		matchValue(f.Industry, a.Industry) &&
		matchValue(f.Owner, a.Owner) &&
		matchTags(f.Tags, a.Tags) &&
		f.Active.Matches(a.IsActive) &&
		f.Created.Contains(a.CreatedAt, now)
}

// GradeFilter holds the job-grade list's filter selections.
type GradeFilter struct {
	Search string
	Parent string
}

func (f GradeFilter) Matches(g JobGrade) bool {
	return matchText(f.Search, g.Key, g.Name) &&
		matchValue(f.Parent, g.ParentKey)
}

// ActivityFilter holds the activity list's filter selections. Done is
// "all", "open" or "done".
type ActivityFilter struct {
	Search string
	Type   string
	Owner  string
	Done   string
	Due    DateRange
}

func (f ActivityFilter) Matches(a Activity, now time.Time) bool {
	if f.Done == "done" && !a.Completed {
		return false
	}
	if f.Done == "open" && a.Completed {
		return false
	}
	return matchText(f.Search, a.Subject, a.Owner) &&
		matchValue(f.Type, string(a.Type)) &&
		matchValue(f.Owner, a.Owner) &&
		f.Due.Contains(a.DueDate, now)
}
