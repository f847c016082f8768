package domain

// Derived dashboard statistics. All three are recomputed per call from
// the filtered observation set; nothing here is persisted.

// ResistanceSummary roll-up over the filtered observations.
type ResistanceSummary struct {
	TotalSamples            int     `json:"totalSamples"`
	ResistantIsolates       int     `json:"resistantIsolates"`
	ResistanceRate          float64 `json:"resistanceRate"`
	ParticipatingFacilities int     `json:"participatingFacilities"`
}

// ResistanceTrend one bacterium x calendar-month data point.
// Month is formatted "YYYY-MM" from the observation's own sample date.
type ResistanceTrend struct {
	Month          string  `json:"month"`
	BacteriaID     int     `json:"bacteriaId"`
	BacteriaName   string  `json:"bacteriaName"`
	ResistanceRate float64 `json:"resistanceRate"`
}

// AntibioticEffectiveness per-antibiotic ranking entry.
// Effectiveness = 100 - resistance rate; zero-sample antibiotics report
// 0, never 100.
type AntibioticEffectiveness struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Effectiveness float64  `json:"effectiveness"`
	Regions       []string `json:"regions"`
}
