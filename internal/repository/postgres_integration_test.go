// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"
	"time"

	"amr-data/internal/config"
	"amr-data/internal/database"
	"amr-data/internal/domain"
)

func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     testEnv("TEST_DB_HOST", "localhost"),
		Port:     testEnvInt("TEST_DB_PORT", 5432),
		User:     testEnv("TEST_DB_USER", "postgres"),
		Password: testEnv("TEST_DB_PASSWORD", "postgres"),
		Database: testEnv("TEST_DB_NAME", "amr"),
		SSLMode:  testEnv("TEST_DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	return db
}

func testEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func cleanupObservations(db *sql.DB, ids []int) {
	for _, id := range ids {
		db.Exec(`DELETE FROM resistance_data WHERE id = $1`, id)
	}
}

func TestPostgresObservationsRepository_InsertAndQuery(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewPostgresObservationsRepository(db)
	ctx := context.Background()

	sampleDate := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	created, err := repo.Insert(ctx, domain.NewObservation{
		BacteriaID:       1,
		AntibioticID:     1,
		RegionID:         1,
		SampleDate:       sampleDate,
		TotalSamples:     100,
		ResistantSamples: 20,
		Notes:            "integration test record",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	defer cleanupObservations(db, []int{created.ID})

	if created.ID == 0 {
		t.Fatal("Expected non-zero id")
	}
	if created.UploadedAt.IsZero() {
		t.Error("Expected uploaded_at to be set")
	}

	bacteriaID := 1
	from := sampleDate.AddDate(0, 0, -1)
	to := sampleDate.AddDate(0, 0, 1)
	got, err := repo.Query(ctx, domain.ResolvedFilter{
		BacteriaID: &bacteriaID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	found := false
	for _, o := range got {
		if o.ID == created.ID {
			found = true
			if o.TotalSamples != 100 || o.ResistantSamples != 20 {
				t.Errorf("Expected counts 100/20, got %d/%d", o.TotalSamples, o.ResistantSamples)
			}
			if o.Notes != "integration test record" {
				t.Errorf("Expected notes to round-trip, got %q", o.Notes)
			}
		}
	}
	if !found {
		t.Errorf("Expected to find inserted record %d in query result", created.ID)
	}
}

func TestPostgresObservationsRepository_QueryExcludesOutOfWindow(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewPostgresObservationsRepository(db)
	ctx := context.Background()

	sampleDate := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	created, err := repo.Insert(ctx, domain.NewObservation{
		BacteriaID:       1,
		AntibioticID:     1,
		RegionID:         1,
		SampleDate:       sampleDate,
		TotalSamples:     10,
		ResistantSamples: 1,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	defer cleanupObservations(db, []int{created.ID})

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	got, err := repo.Query(ctx, domain.ResolvedFilter{From: &from})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	for _, o := range got {
		if o.ID == created.ID {
			t.Errorf("Record %d dated %s must not match from=%s", o.ID, sampleDate, from)
		}
	}
}

func TestPostgresObservationsRepository_BulkInsert(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewPostgresObservationsRepository(db)
	ctx := context.Background()

	sampleDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.NewObservation{
		{BacteriaID: 1, AntibioticID: 1, RegionID: 1, SampleDate: sampleDate, TotalSamples: 50, ResistantSamples: 5},
		{BacteriaID: 2, AntibioticID: 2, RegionID: 2, SampleDate: sampleDate, TotalSamples: 60, ResistantSamples: 6},
	}

	created, err := repo.BulkInsert(ctx, records)
	if err != nil {
		t.Fatalf("BulkInsert failed: %v", err)
	}
	ids := make([]int, 0, len(created))
	for _, o := range created {
		ids = append(ids, o.ID)
	}
	defer cleanupObservations(db, ids)

	if len(created) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(created))
	}
	for _, o := range created {
		if o.ID == 0 {
			t.Error("Expected non-zero id on bulk-inserted record")
		}
	}
}

func TestPostgresCatalogsRepository_BacteriaRoundTrip(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewPostgresCatalogsRepository(db)
	ctx := context.Background()

	created, err := repo.CreateBacteria(ctx, domain.Bacteria{
		Name:           "Test bacterium",
		ScientificName: "Testus integrationis",
	})
	if err != nil {
		t.Fatalf("CreateBacteria failed: %v", err)
	}
	defer db.Exec(`DELETE FROM bacteria WHERE id = $1`, created.ID)

	got, err := repo.GetBacteria(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBacteria failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected bacteria, got nil")
	}
	if got.Name != "Test bacterium" {
		t.Errorf("Expected name 'Test bacterium', got %q", got.Name)
	}

	missing, err := repo.GetBacteria(ctx, -1)
	if err != nil {
		t.Fatalf("GetBacteria for missing id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing id, got %+v", missing)
	}
}
