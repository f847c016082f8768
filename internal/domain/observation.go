package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidObservation marks validation failures on submitted records.
// Handlers map it to HTTP 400; everything else is a storage fault.
var ErrInvalidObservation = errors.New("invalid observation")

// Observation one resistance-sampling fact
// (bacterium x antibiotic x region x facility x date x counts).
// Immutable after creation.
type Observation struct {
	ID               int       `json:"id"`
	BacteriaID       int       `json:"bacteriaId"`
	AntibioticID     int       `json:"antibioticId"`
	RegionID         int       `json:"regionId"`
	FacilityID       *int      `json:"facilityId,omitempty"`
	SampleDate       time.Time `json:"sampleDate"`
	TotalSamples     int       `json:"totalSamples"`
	ResistantSamples int       `json:"resistantSamples"`
	Notes            string    `json:"notes,omitempty"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// NewObservation insert payload (id and uploadedAt are assigned by the store)
type NewObservation struct {
	BacteriaID       int       `json:"bacteriaId"`
	AntibioticID     int       `json:"antibioticId"`
	RegionID         int       `json:"regionId"`
	FacilityID       *int      `json:"facilityId,omitempty"`
	SampleDate       time.Time `json:"sampleDate"`
	TotalSamples     int       `json:"totalSamples"`
	ResistantSamples int       `json:"resistantSamples"`
	Notes            string    `json:"notes,omitempty"`
}

// Validate checks the count invariants (0 <= resistant <= total) and
// required references before a record reaches any storage backend.
func (n NewObservation) Validate() error {
	if n.BacteriaID <= 0 {
		return fmt.Errorf("%w: bacteriaId is required", ErrInvalidObservation)
	}
	if n.AntibioticID <= 0 {
		return fmt.Errorf("%w: antibioticId is required", ErrInvalidObservation)
	}
	if n.RegionID <= 0 {
		return fmt.Errorf("%w: regionId is required", ErrInvalidObservation)
	}
	if n.SampleDate.IsZero() {
		return fmt.Errorf("%w: sampleDate is required", ErrInvalidObservation)
	}
	if n.TotalSamples < 0 {
		return fmt.Errorf("%w: totalSamples must be >= 0", ErrInvalidObservation)
	}
	if n.ResistantSamples < 0 {
		return fmt.Errorf("%w: resistantSamples must be >= 0", ErrInvalidObservation)
	}
	if n.ResistantSamples > n.TotalSamples {
		return fmt.Errorf("%w: resistantSamples (%d) exceeds totalSamples (%d)",
			ErrInvalidObservation, n.ResistantSamples, n.TotalSamples)
	}
	return nil
}
