package repository

import (
	"context"

	"amr-data/internal/domain"
)

// ObservationsRepository resistance observation access.
//
// Query takes an already-resolved filter (absolute date bounds, concrete
// equality constraints) so that both backends answer the exact same
// question; relative time windows are expanded before this layer.
//
// BulkInsert is all-or-nothing: callers validate every record up front
// and the Postgres implementation wraps the batch in a transaction, so a
// failure leaves no partial batch behind.
type ObservationsRepository interface {
	Query(ctx context.Context, filter domain.ResolvedFilter) ([]domain.Observation, error)
	Insert(ctx context.Context, record domain.NewObservation) (domain.Observation, error)
	BulkInsert(ctx context.Context, records []domain.NewObservation) ([]domain.Observation, error)
}
