package repository

import (
	"context"
	"math/rand"
	"time"

	"amr-data/internal/domain"
)

// SeedDemoData loads the built-in catalogs plus twelve months of
// generated observations into a memory store. Intended for local dev
// runs without a database; never used against Postgres.
func SeedDemoData(s *MemoryStore) {
	ctx := context.Background()

	for _, b := range []domain.Bacteria{
		{Name: "E. coli", ScientificName: "Escherichia coli", Description: "Common gram-negative bacteria found in the intestines"},
		{Name: "S. aureus", ScientificName: "Staphylococcus aureus", Description: "Gram-positive bacteria commonly found on the skin"},
		{Name: "K. pneumoniae", ScientificName: "Klebsiella pneumoniae", Description: "Gram-negative bacteria that can cause pneumonia and other infections"},
		{Name: "P. aeruginosa", ScientificName: "Pseudomonas aeruginosa", Description: "Gram-negative bacteria associated with hospital-acquired infections"},
	} {
		_, _ = s.CreateBacteria(ctx, b)
	}

	for _, a := range []domain.Antibiotic{
		{Name: "Amoxicillin", Class: "Penicillin", Description: "Beta-lactam antibiotic used to treat a range of bacterial infections"},
		{Name: "Ciprofloxacin", Class: "Fluoroquinolone", Description: "Broad-spectrum antibiotic effective against gram-negative bacteria"},
		{Name: "Ceftriaxone", Class: "Cephalosporin", Description: "Third-generation cephalosporin with broad-spectrum activity"},
		{Name: "Meropenem", Class: "Carbapenem", Description: "Broad-spectrum beta-lactam antibiotic reserved for serious infections"},
		{Name: "Vancomycin", Class: "Glycopeptide", Description: "Used for serious gram-positive infections, including MRSA"},
	} {
		_, _ = s.CreateAntibiotic(ctx, a)
	}

	for _, r := range []domain.Region{
		{Name: "North America", Code: "NA"},
		{Name: "Europe", Code: "EU"},
		{Name: "Asia", Code: "AS"},
		{Name: "Africa", Code: "AF"},
	} {
		_, _ = s.CreateRegion(ctx, r)
	}

	for _, f := range []domain.Facility{
		{Name: "Central Hospital", Type: "Hospital", RegionID: 1, Address: "123 Main St, New York", ContactInfo: "contact@centralhospital.org"},
		{Name: "University Medical Center", Type: "Hospital", RegionID: 1, Address: "456 College Rd, Boston", ContactInfo: "info@universitymedical.org"},
		{Name: "Regional Health Center", Type: "Clinic", RegionID: 2, Address: "789 Health Blvd, London", ContactInfo: "info@regionalhealthcenter.org"},
		{Name: "Community Hospital", Type: "Hospital", RegionID: 3, Address: "101 Care St, Tokyo", ContactInfo: "info@communityhospital.org"},
	} {
		_, _ = s.CreateFacility(ctx, f)
	}

	for _, r := range []domain.NewResource{
		{
			Title:       "WHO Global Report on AMR Surveillance",
			Type:        "document",
			URL:         "https://www.who.int/publications/i/item/9789240054608",
			Description: "Comprehensive report on the global state of antimicrobial resistance",
			PublishedAt: time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Webinar: New Approaches to MDRO Detection",
			Type:        "webinar",
			URL:         "https://example.com/webinars/mdro-detection",
			Description: "Learn about the latest methods for detecting multi-drug resistant organisms",
			PublishedAt: time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Guide: Interpreting Antibiograms",
			Type:        "guide",
			URL:         "https://example.com/guides/antibiogram-interpretation",
			Description: "A comprehensive guide to understanding and interpreting antibiograms",
			PublishedAt: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	} {
		_, _ = s.CreateResource(ctx, r)
	}

	one, two, three, four := 1, 2, 3, 4
	for _, a := range []domain.NewAlert{
		{
			Title:        "Critical: Carbapenem Resistance Surge",
			Description:  "300% increase in carbapenem-resistant K. pneumoniae detected in Northwest region",
			Severity:     domain.SeverityCritical,
			BacteriaID:   &three,
			AntibioticID: &four,
			RegionID:     &one,
			IsActive:     true,
		},
		{
			Title:       "Warning: New Resistance Mechanism",
			Description: "Novel ESBL gene variant detected in 5 facilities across the Eastern region",
			Severity:    domain.SeverityWarning,
			BacteriaID:  &one,
			RegionID:    &two,
			IsActive:    true,
		},
		{
			Title:        "Pattern Change: Quinolone Resistance",
			Description:  "Stable trend of ciprofloxacin resistance in E. coli after 2 years of increases",
			Severity:     domain.SeverityInfo,
			BacteriaID:   &one,
			AntibioticID: &two,
			IsActive:     true,
		},
	} {
		_, _ = s.CreateAlert(ctx, a)
	}

	// Twelve months of generated observations across every
	// bacterium x antibiotic x region combination.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().UTC()
	for m := 0; m < 12; m++ {
		sampleDate := today.AddDate(0, -m, 0)
		for bacteriaID := 1; bacteriaID <= 4; bacteriaID++ {
			for antibioticID := 1; antibioticID <= 5; antibioticID++ {
				for regionID := 1; regionID <= 4; regionID++ {
					total := rng.Intn(1000) + 100
					resistant := int(float64(total) * rng.Float64() * 0.8)
					facilityID := rng.Intn(4) + 1

					_, _ = s.Insert(ctx, domain.NewObservation{
						BacteriaID:       bacteriaID,
						AntibioticID:     antibioticID,
						RegionID:         regionID,
						FacilityID:       &facilityID,
						SampleDate:       sampleDate,
						TotalSamples:     total,
						ResistantSamples: resistant,
					})
				}
			}
		}
	}
}
