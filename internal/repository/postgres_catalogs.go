package repository

import (
	"context"
	"database/sql"
	"fmt"

	"amr-data/internal/domain"
)

// PostgresCatalogsRepository catalog table access (bacteria, antibiotics,
// regions, facilities).
type PostgresCatalogsRepository struct {
	db *sql.DB
}

func NewPostgresCatalogsRepository(db *sql.DB) *PostgresCatalogsRepository {
	return &PostgresCatalogsRepository{db: db}
}

var (
	_ BacteriaRepository    = (*PostgresCatalogsRepository)(nil)
	_ AntibioticsRepository = (*PostgresCatalogsRepository)(nil)
	_ RegionsRepository     = (*PostgresCatalogsRepository)(nil)
	_ FacilitiesRepository  = (*PostgresCatalogsRepository)(nil)
)

// ---- bacteria ----

func (r *PostgresCatalogsRepository) ListBacteria(ctx context.Context) ([]domain.Bacteria, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, scientific_name, COALESCE(description, '')
		FROM bacteria
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bacteria: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Bacteria, 0)
	for rows.Next() {
		var b domain.Bacteria
		if err := rows.Scan(&b.ID, &b.Name, &b.ScientificName, &b.Description); err != nil {
			return nil, fmt.Errorf("failed to scan bacteria: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresCatalogsRepository) GetBacteria(ctx context.Context, id int) (*domain.Bacteria, error) {
	var b domain.Bacteria
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, scientific_name, COALESCE(description, '')
		FROM bacteria
		WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.ScientificName, &b.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bacteria: %w", err)
	}
	return &b, nil
}

func (r *PostgresCatalogsRepository) CreateBacteria(ctx context.Context, b domain.Bacteria) (domain.Bacteria, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bacteria (name, scientific_name, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id`,
		b.Name, b.ScientificName, b.Description).
		Scan(&b.ID)
	if err != nil {
		return domain.Bacteria{}, fmt.Errorf("failed to create bacteria: %w", err)
	}
	return b, nil
}

// ---- antibiotics ----

func (r *PostgresCatalogsRepository) ListAntibiotics(ctx context.Context) ([]domain.Antibiotic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, class, COALESCE(description, '')
		FROM antibiotics
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list antibiotics: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Antibiotic, 0)
	for rows.Next() {
		var a domain.Antibiotic
		if err := rows.Scan(&a.ID, &a.Name, &a.Class, &a.Description); err != nil {
			return nil, fmt.Errorf("failed to scan antibiotic: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresCatalogsRepository) GetAntibiotic(ctx context.Context, id int) (*domain.Antibiotic, error) {
	var a domain.Antibiotic
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, class, COALESCE(description, '')
		FROM antibiotics
		WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Class, &a.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get antibiotic: %w", err)
	}
	return &a, nil
}

func (r *PostgresCatalogsRepository) CreateAntibiotic(ctx context.Context, a domain.Antibiotic) (domain.Antibiotic, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO antibiotics (name, class, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id`,
		a.Name, a.Class, a.Description).
		Scan(&a.ID)
	if err != nil {
		return domain.Antibiotic{}, fmt.Errorf("failed to create antibiotic: %w", err)
	}
	return a, nil
}

// ---- regions ----

func (r *PostgresCatalogsRepository) ListRegions(ctx context.Context) ([]domain.Region, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, code, parent_id
		FROM regions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Region, 0)
	for rows.Next() {
		var region domain.Region
		var parent sql.NullInt64
		if err := rows.Scan(&region.ID, &region.Name, &region.Code, &parent); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		if parent.Valid {
			p := int(parent.Int64)
			region.ParentID = &p
		}
		out = append(out, region)
	}
	return out, rows.Err()
}

func (r *PostgresCatalogsRepository) GetRegion(ctx context.Context, id int) (*domain.Region, error) {
	var region domain.Region
	var parent sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, code, parent_id
		FROM regions
		WHERE id = $1`, id).
		Scan(&region.ID, &region.Name, &region.Code, &parent)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get region: %w", err)
	}
	if parent.Valid {
		p := int(parent.Int64)
		region.ParentID = &p
	}
	return &region, nil
}

func (r *PostgresCatalogsRepository) CreateRegion(ctx context.Context, region domain.Region) (domain.Region, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO regions (name, code, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		region.Name, region.Code, nullableInt(region.ParentID)).
		Scan(&region.ID)
	if err != nil {
		return domain.Region{}, fmt.Errorf("failed to create region: %w", err)
	}
	return region, nil
}

// ---- facilities ----

const facilityColumns = `id, name, type, region_id, COALESCE(address, ''), COALESCE(contact_info, '')`

func (r *PostgresCatalogsRepository) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+facilityColumns+` FROM facilities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()
	return scanFacilities(rows)
}

func (r *PostgresCatalogsRepository) ListFacilitiesByRegion(ctx context.Context, regionID int) ([]domain.Facility, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+facilityColumns+` FROM facilities WHERE region_id = $1 ORDER BY id`, regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities by region: %w", err)
	}
	defer rows.Close()
	return scanFacilities(rows)
}

func (r *PostgresCatalogsRepository) CreateFacility(ctx context.Context, f domain.Facility) (domain.Facility, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO facilities (name, type, region_id, address, contact_info)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id`,
		f.Name, f.Type, f.RegionID, f.Address, f.ContactInfo).
		Scan(&f.ID)
	if err != nil {
		return domain.Facility{}, fmt.Errorf("failed to create facility: %w", err)
	}
	return f, nil
}

func scanFacilities(rows *sql.Rows) ([]domain.Facility, error) {
	out := make([]domain.Facility, 0)
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.RegionID, &f.Address, &f.ContactInfo); err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
