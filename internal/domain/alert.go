package domain

import "time"

// AlertSeverity severity levels shown on the dashboard alerts widget
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Alert surveillance notice (alerts table). The catalog references are
// optional: an alert may concern a pathogen, a drug, a region, any
// combination, or none.
type Alert struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Severity     AlertSeverity `json:"severity"`
	BacteriaID   *int          `json:"bacteriaId,omitempty"`
	AntibioticID *int          `json:"antibioticId,omitempty"`
	RegionID     *int          `json:"regionId,omitempty"`
	IsActive     bool          `json:"isActive"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// NewAlert insert payload
type NewAlert struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Severity     AlertSeverity `json:"severity"`
	BacteriaID   *int          `json:"bacteriaId,omitempty"`
	AntibioticID *int          `json:"antibioticId,omitempty"`
	RegionID     *int          `json:"regionId,omitempty"`
	IsActive     bool          `json:"isActive"`
}
