package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"amr-data/internal/domain"
)

// MemoryStore in-memory backend used for local dev and tests when no
// database is available. Implements every repository interface. IDs are
// auto-incremented per table, matching the serial columns of the
// Postgres schema.
type MemoryStore struct {
	mu sync.RWMutex

	bacteria     map[int]domain.Bacteria
	antibiotics  map[int]domain.Antibiotic
	regions      map[int]domain.Region
	facilities   map[int]domain.Facility
	observations map[int]domain.Observation
	alerts       map[int]domain.Alert
	resources    map[int]domain.Resource

	bacteriaSeq    int
	antibioticSeq  int
	regionSeq      int
	facilitySeq    int
	observationSeq int
	alertSeq       int
	resourceSeq    int
}

var (
	_ BacteriaRepository     = (*MemoryStore)(nil)
	_ AntibioticsRepository  = (*MemoryStore)(nil)
	_ RegionsRepository      = (*MemoryStore)(nil)
	_ FacilitiesRepository   = (*MemoryStore)(nil)
	_ ObservationsRepository = (*MemoryStore)(nil)
	_ AlertsRepository       = (*MemoryStore)(nil)
	_ ResourcesRepository    = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bacteria:     map[int]domain.Bacteria{},
		antibiotics:  map[int]domain.Antibiotic{},
		regions:      map[int]domain.Region{},
		facilities:   map[int]domain.Facility{},
		observations: map[int]domain.Observation{},
		alerts:       map[int]domain.Alert{},
		resources:    map[int]domain.Resource{},
	}
}

// ---- bacteria ----

func (s *MemoryStore) ListBacteria(_ context.Context) ([]domain.Bacteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Bacteria, 0, len(s.bacteria))
	for _, b := range s.bacteria {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetBacteria(_ context.Context, id int) (*domain.Bacteria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bacteria[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *MemoryStore) CreateBacteria(_ context.Context, b domain.Bacteria) (domain.Bacteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bacteriaSeq++
	b.ID = s.bacteriaSeq
	s.bacteria[b.ID] = b
	return b, nil
}

// ---- antibiotics ----

func (s *MemoryStore) ListAntibiotics(_ context.Context) ([]domain.Antibiotic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Antibiotic, 0, len(s.antibiotics))
	for _, a := range s.antibiotics {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetAntibiotic(_ context.Context, id int) (*domain.Antibiotic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.antibiotics[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemoryStore) CreateAntibiotic(_ context.Context, a domain.Antibiotic) (domain.Antibiotic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.antibioticSeq++
	a.ID = s.antibioticSeq
	s.antibiotics[a.ID] = a
	return a, nil
}

// ---- regions ----

func (s *MemoryStore) ListRegions(_ context.Context) ([]domain.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Region, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetRegion(_ context.Context, id int) (*domain.Region, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.regions[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *MemoryStore) CreateRegion(_ context.Context, r domain.Region) (domain.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.regionSeq++
	r.ID = s.regionSeq
	s.regions[r.ID] = r
	return r, nil
}

// ---- facilities ----

func (s *MemoryStore) ListFacilities(_ context.Context) ([]domain.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Facility, 0, len(s.facilities))
	for _, f := range s.facilities {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListFacilitiesByRegion(_ context.Context, regionID int) ([]domain.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Facility, 0)
	for _, f := range s.facilities {
		if f.RegionID == regionID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateFacility(_ context.Context, f domain.Facility) (domain.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.facilitySeq++
	f.ID = s.facilitySeq
	s.facilities[f.ID] = f
	return f, nil
}

// ---- observations ----

func (s *MemoryStore) Query(_ context.Context, filter domain.ResolvedFilter) ([]domain.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Observation, 0)
	for _, o := range s.observations {
		if filter.Matches(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, record domain.NewObservation) (domain.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(record), nil
}

func (s *MemoryStore) BulkInsert(_ context.Context, records []domain.NewObservation) ([]domain.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Observation, 0, len(records))
	for _, record := range records {
		out = append(out, s.insertLocked(record))
	}
	return out, nil
}

func (s *MemoryStore) insertLocked(record domain.NewObservation) domain.Observation {
	s.observationSeq++
	o := domain.Observation{
		ID:               s.observationSeq,
		BacteriaID:       record.BacteriaID,
		AntibioticID:     record.AntibioticID,
		RegionID:         record.RegionID,
		FacilityID:       record.FacilityID,
		SampleDate:       record.SampleDate,
		TotalSamples:     record.TotalSamples,
		ResistantSamples: record.ResistantSamples,
		Notes:            record.Notes,
		UploadedAt:       time.Now().UTC(),
	}
	s.observations[o.ID] = o
	return o
}

// ---- alerts ----

func (s *MemoryStore) ListAlerts(_ context.Context, activeOnly *bool) ([]domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if activeOnly != nil && a.IsActive != *activeOnly {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) CreateAlert(_ context.Context, a domain.NewAlert) (domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alertSeq++
	alert := domain.Alert{
		ID:           s.alertSeq,
		Title:        a.Title,
		Description:  a.Description,
		Severity:     a.Severity,
		BacteriaID:   a.BacteriaID,
		AntibioticID: a.AntibioticID,
		RegionID:     a.RegionID,
		IsActive:     a.IsActive,
		CreatedAt:    time.Now().UTC(),
	}
	s.alerts[alert.ID] = alert
	return alert, nil
}

// ---- resources ----

func (s *MemoryStore) ListResources(_ context.Context) ([]domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetResource(_ context.Context, id int) (*domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *MemoryStore) CreateResource(_ context.Context, r domain.NewResource) (domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resourceSeq++
	resource := domain.Resource{
		ID:          s.resourceSeq,
		Title:       r.Title,
		Type:        r.Type,
		URL:         r.URL,
		Description: r.Description,
		PublishedAt: r.PublishedAt,
	}
	s.resources[resource.ID] = resource
	return resource, nil
}
