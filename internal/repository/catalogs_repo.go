package repository

import (
	"context"

	"amr-data/internal/domain"
)

// Catalog repositories. Strongly typed domain models, no map[string]any.
// Catalogs are small; ListAll returns everything and the aggregation
// layer builds its id->name indexes from that.

// BacteriaRepository pathogen catalog access
type BacteriaRepository interface {
	ListBacteria(ctx context.Context) ([]domain.Bacteria, error)
	GetBacteria(ctx context.Context, id int) (*domain.Bacteria, error)
	CreateBacteria(ctx context.Context, b domain.Bacteria) (domain.Bacteria, error)
}

// AntibioticsRepository drug catalog access
type AntibioticsRepository interface {
	ListAntibiotics(ctx context.Context) ([]domain.Antibiotic, error)
	GetAntibiotic(ctx context.Context, id int) (*domain.Antibiotic, error)
	CreateAntibiotic(ctx context.Context, a domain.Antibiotic) (domain.Antibiotic, error)
}

// RegionsRepository geographic catalog access
type RegionsRepository interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	GetRegion(ctx context.Context, id int) (*domain.Region, error)
	CreateRegion(ctx context.Context, r domain.Region) (domain.Region, error)
}

// FacilitiesRepository reporting-site catalog access
type FacilitiesRepository interface {
	ListFacilities(ctx context.Context) ([]domain.Facility, error)
	ListFacilitiesByRegion(ctx context.Context, regionID int) ([]domain.Facility, error)
	CreateFacility(ctx context.Context, f domain.Facility) (domain.Facility, error)
}
