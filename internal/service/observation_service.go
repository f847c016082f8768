package service

import (
	"context"
	"fmt"
	"time"

	"amr-data/internal/domain"
	"amr-data/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// feedClient pulls observation batches from an external surveillance
// feed (interface so tests can stub the network).
type feedClient interface {
	FetchObservations(ctx context.Context, since time.Time) ([]domain.NewObservation, error)
}

// ObservationService observation listing and entry on top of the
// configured storage backend.
type ObservationService interface {
	List(ctx context.Context, filter domain.FilterSpec) ([]domain.Observation, error)
	Create(ctx context.Context, record domain.NewObservation) (domain.Observation, error)

	// BulkCreate is all-or-nothing: every record is validated before any
	// insert happens, and the returned batch id ties the request to its
	// log lines. A validation failure reports the offending record index.
	BulkCreate(ctx context.Context, records []domain.NewObservation) (string, []domain.Observation, error)

	// SyncFeed pulls records published since the given time from the
	// external surveillance feed and stores them as one bulk batch.
	SyncFeed(ctx context.Context, since time.Time) (int, error)
}

type observationService struct {
	observations repository.ObservationsRepository
	feed         feedClient
	logger       *zap.Logger

	now func() time.Time
}

func NewObservationService(observations repository.ObservationsRepository, feed feedClient, logger *zap.Logger) ObservationService {
	return &observationService{
		observations: observations,
		feed:         feed,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *observationService) List(ctx context.Context, filter domain.FilterSpec) ([]domain.Observation, error) {
	observations, err := s.observations.Query(ctx, filter.Resolve(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	return observations, nil
}

func (s *observationService) Create(ctx context.Context, record domain.NewObservation) (domain.Observation, error) {
	if err := record.Validate(); err != nil {
		return domain.Observation{}, err
	}
	o, err := s.observations.Insert(ctx, record)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("failed to store observation: %w", err)
	}
	return o, nil
}

func (s *observationService) BulkCreate(ctx context.Context, records []domain.NewObservation) (string, []domain.Observation, error) {
	batchID := uuid.NewString()

	if len(records) == 0 {
		return batchID, nil, fmt.Errorf("%w: empty batch", domain.ErrInvalidObservation)
	}
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return batchID, nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	out, err := s.observations.BulkInsert(ctx, records)
	if err != nil {
		return batchID, nil, fmt.Errorf("failed to store batch %s: %w", batchID, err)
	}

	s.logger.Info("stored observation batch",
		zap.String("batch_id", batchID),
		zap.Int("records", len(out)))
	return batchID, out, nil
}

func (s *observationService) SyncFeed(ctx context.Context, since time.Time) (int, error) {
	if s.feed == nil {
		return 0, fmt.Errorf("no surveillance feed configured")
	}

	records, err := s.feed.FetchObservations(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch surveillance feed: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	batchID, stored, err := s.BulkCreate(ctx, records)
	if err != nil {
		return 0, err
	}

	s.logger.Info("synced surveillance feed",
		zap.String("batch_id", batchID),
		zap.Time("since", since),
		zap.Int("records", len(stored)))
	return len(stored), nil
}
