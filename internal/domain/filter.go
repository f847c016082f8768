package domain

import "time"

// TimePeriod named relative time window, resolved against "today" at query time.
type TimePeriod string

const (
	Period3M     TimePeriod = "3m"
	Period6M     TimePeriod = "6m"
	Period12M    TimePeriod = "12m"
	Period2Y     TimePeriod = "2y"
	Period5Y     TimePeriod = "5y"
	PeriodCustom TimePeriod = "custom"
)

// DefaultPeriod applies when the caller supplies no time constraint at all.
const DefaultPeriod = Period12M

// FilterSpec user-selected subset constraints, shared by every dashboard
// view and by raw observation listing. All fields are optional; equality
// fields left nil impose no constraint on that dimension.
type FilterSpec struct {
	BacteriaID   *int       `json:"bacteriaId,omitempty"`
	AntibioticID *int       `json:"antibioticId,omitempty"`
	RegionID     *int       `json:"regionId,omitempty"`
	TimePeriod   TimePeriod `json:"timePeriod,omitempty"`
	FromDate     *time.Time `json:"fromDate,omitempty"`
	ToDate       *time.Time `json:"toDate,omitempty"`
}

// ResolvedFilter concrete query constraint handed to a storage backend.
// Date bounds are inclusive: sampleDate in [From, To].
type ResolvedFilter struct {
	BacteriaID   *int
	AntibioticID *int
	RegionID     *int
	From         *time.Time
	To           *time.Time
}

// Resolve expands the filter into absolute bounds.
//
// An explicit fromDate/toDate pair always wins. Otherwise the named
// period is subtracted from now calendar-aware (AddDate), with 12m as
// the documented default. "custom" without an explicit pair applies no
// date bound at all; that fallback is what the UI relies on when a
// custom range is cleared.
func (f FilterSpec) Resolve(now time.Time) ResolvedFilter {
	rf := ResolvedFilter{
		BacteriaID:   f.BacteriaID,
		AntibioticID: f.AntibioticID,
		RegionID:     f.RegionID,
	}

	if f.FromDate != nil && f.ToDate != nil {
		rf.From = f.FromDate
		rf.To = f.ToDate
		return rf
	}

	period := f.TimePeriod
	if period == "" {
		period = DefaultPeriod
	}

	var from time.Time
	switch period {
	case Period3M:
		from = now.AddDate(0, -3, 0)
	case Period6M:
		from = now.AddDate(0, -6, 0)
	case Period12M:
		from = now.AddDate(0, -12, 0)
	case Period2Y:
		from = now.AddDate(-2, 0, 0)
	case Period5Y:
		from = now.AddDate(-5, 0, 0)
	default:
		// custom (or unknown) without explicit dates: pass-through
		return rf
	}

	to := now
	rf.From = &from
	rf.To = &to
	return rf
}

// Matches reports whether an observation falls inside the filter.
// This is the single predicate definition; the in-memory backend applies
// it directly and the SQL backend mirrors it clause for clause.
func (rf ResolvedFilter) Matches(o Observation) bool {
	if rf.BacteriaID != nil && o.BacteriaID != *rf.BacteriaID {
		return false
	}
	if rf.AntibioticID != nil && o.AntibioticID != *rf.AntibioticID {
		return false
	}
	if rf.RegionID != nil && o.RegionID != *rf.RegionID {
		return false
	}
	if rf.From != nil && o.SampleDate.Before(*rf.From) {
		return false
	}
	if rf.To != nil && o.SampleDate.After(*rf.To) {
		return false
	}
	return true
}
