package repository

import (
	"context"
	"database/sql"
	"fmt"

	"amr-data/internal/domain"
)

// PostgresContentRepository alerts and resources table access.
type PostgresContentRepository struct {
	db *sql.DB
}

func NewPostgresContentRepository(db *sql.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

var (
	_ AlertsRepository    = (*PostgresContentRepository)(nil)
	_ ResourcesRepository = (*PostgresContentRepository)(nil)
)

// ---- alerts ----

func (r *PostgresContentRepository) ListAlerts(ctx context.Context, activeOnly *bool) ([]domain.Alert, error) {
	query := `
		SELECT id, title, description, severity,
		       bacteria_id, antibiotic_id, region_id, is_active, created_at
		FROM alerts`
	args := []any{}
	if activeOnly != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *activeOnly)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Alert, 0)
	for rows.Next() {
		var a domain.Alert
		var bacteria, antibiotic, region sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Severity,
			&bacteria, &antibiotic, &region, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.BacteriaID = intPtr(bacteria)
		a.AntibioticID = intPtr(antibiotic)
		a.RegionID = intPtr(region)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresContentRepository) CreateAlert(ctx context.Context, a domain.NewAlert) (domain.Alert, error) {
	alert := domain.Alert{
		Title:        a.Title,
		Description:  a.Description,
		Severity:     a.Severity,
		BacteriaID:   a.BacteriaID,
		AntibioticID: a.AntibioticID,
		RegionID:     a.RegionID,
		IsActive:     a.IsActive,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO alerts (title, description, severity, bacteria_id, antibiotic_id, region_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		a.Title, a.Description, a.Severity,
		nullableInt(a.BacteriaID), nullableInt(a.AntibioticID), nullableInt(a.RegionID),
		a.IsActive).
		Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return domain.Alert{}, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// ---- resources ----

func (r *PostgresContentRepository) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, type, url, COALESCE(description, ''), published_at
		FROM resources
		ORDER BY published_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Resource, 0)
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Type, &res.URL, &res.Description, &res.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PostgresContentRepository) GetResource(ctx context.Context, id int) (*domain.Resource, error) {
	var res domain.Resource
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, type, url, COALESCE(description, ''), published_at
		FROM resources
		WHERE id = $1`, id).
		Scan(&res.ID, &res.Title, &res.Type, &res.URL, &res.Description, &res.PublishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return &res, nil
}

func (r *PostgresContentRepository) CreateResource(ctx context.Context, nr domain.NewResource) (domain.Resource, error) {
	res := domain.Resource{
		Title:       nr.Title,
		Type:        nr.Type,
		URL:         nr.URL,
		Description: nr.Description,
		PublishedAt: nr.PublishedAt,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO resources (title, type, url, description, published_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id`,
		nr.Title, nr.Type, nr.URL, nr.Description, nr.PublishedAt).
		Scan(&res.ID)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
