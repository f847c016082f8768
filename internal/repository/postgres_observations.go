package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"amr-data/internal/domain"
)

// PostgresObservationsRepository resistance_data table access.
//
// The WHERE clauses built in Query mirror domain.ResolvedFilter.Matches
// clause for clause; the aggregation itself always happens in
// internal/aggregate so both backends stay semantically identical.
type PostgresObservationsRepository struct {
	db *sql.DB
}

func NewPostgresObservationsRepository(db *sql.DB) *PostgresObservationsRepository {
	return &PostgresObservationsRepository{db: db}
}

var _ ObservationsRepository = (*PostgresObservationsRepository)(nil)

const observationColumns = `id, bacteria_id, antibiotic_id, region_id, facility_id,
	sample_date, total_samples, resistant_samples, COALESCE(notes, ''), uploaded_at`

func (r *PostgresObservationsRepository) Query(ctx context.Context, filter domain.ResolvedFilter) ([]domain.Observation, error) {
	conds := make([]string, 0, 5)
	args := make([]any, 0, 5)

	add := func(clause string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}

	if filter.BacteriaID != nil {
		add("bacteria_id = $%d", *filter.BacteriaID)
	}
	if filter.AntibioticID != nil {
		add("antibiotic_id = $%d", *filter.AntibioticID)
	}
	if filter.RegionID != nil {
		add("region_id = $%d", *filter.RegionID)
	}
	if filter.From != nil {
		add("sample_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("sample_date <= $%d", *filter.To)
	}

	query := `SELECT ` + observationColumns + ` FROM resistance_data`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resistance data: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Observation, 0)
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresObservationsRepository) Insert(ctx context.Context, record domain.NewObservation) (domain.Observation, error) {
	row := r.db.QueryRowContext(ctx, insertObservationSQL,
		record.BacteriaID, record.AntibioticID, record.RegionID,
		nullableInt(record.FacilityID), record.SampleDate,
		record.TotalSamples, record.ResistantSamples, record.Notes)

	o, err := scanObservation(row)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("failed to insert resistance data: %w", err)
	}
	return o, nil
}

// BulkInsert inserts the whole batch inside a single transaction, so a
// failure on any record rolls back every record (all-or-nothing).
func (r *PostgresObservationsRepository) BulkInsert(ctx context.Context, records []domain.NewObservation) ([]domain.Observation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin bulk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertObservationSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	out := make([]domain.Observation, 0, len(records))
	for i, record := range records {
		row := stmt.QueryRowContext(ctx,
			record.BacteriaID, record.AntibioticID, record.RegionID,
			nullableInt(record.FacilityID), record.SampleDate,
			record.TotalSamples, record.ResistantSamples, record.Notes)

		o, err := scanObservation(row)
		if err != nil {
			return nil, fmt.Errorf("failed to insert resistance data record %d: %w", i, err)
		}
		out = append(out, o)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return out, nil
}

const insertObservationSQL = `
	INSERT INTO resistance_data
		(bacteria_id, antibiotic_id, region_id, facility_id,
		 sample_date, total_samples, resistant_samples, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
	RETURNING ` + observationColumns

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObservation(row rowScanner) (domain.Observation, error) {
	var o domain.Observation
	var facility sql.NullInt64
	err := row.Scan(
		&o.ID, &o.BacteriaID, &o.AntibioticID, &o.RegionID, &facility,
		&o.SampleDate, &o.TotalSamples, &o.ResistantSamples, &o.Notes, &o.UploadedAt,
	)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("failed to scan resistance data: %w", err)
	}
	if facility.Valid {
		f := int(facility.Int64)
		o.FacilityID = &f
	}
	return o, nil
}
