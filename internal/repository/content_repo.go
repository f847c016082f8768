package repository

import (
	"context"

	"amr-data/internal/domain"
)

// AlertsRepository surveillance alert access.
// ListAlerts returns newest first; activeOnly nil means no status filter.
type AlertsRepository interface {
	ListAlerts(ctx context.Context, activeOnly *bool) ([]domain.Alert, error)
	CreateAlert(ctx context.Context, a domain.NewAlert) (domain.Alert, error)
}

// ResourcesRepository reference material access.
// ListResources returns newest publishedAt first.
type ResourcesRepository interface {
	ListResources(ctx context.Context) ([]domain.Resource, error)
	GetResource(ctx context.Context, id int) (*domain.Resource, error)
	CreateResource(ctx context.Context, r domain.NewResource) (domain.Resource, error)
}
