package service

import (
	"context"
	"fmt"
	"time"

	"amr-data/internal/aggregate"
	"amr-data/internal/domain"
	"amr-data/internal/repository"

	"go.uber.org/zap"
)

// DashboardService computes the three dashboard statistics for an
// optional filter. Each call resolves the filter against "today",
// fetches a fresh observation snapshot and reduces it; nothing is
// cached between calls.
type DashboardService interface {
	GetSummary(ctx context.Context, filter domain.FilterSpec) (domain.ResistanceSummary, error)
	GetTrends(ctx context.Context, filter domain.FilterSpec) ([]domain.ResistanceTrend, error)
	GetEffectiveness(ctx context.Context, filter domain.FilterSpec) ([]domain.AntibioticEffectiveness, error)
}

type dashboardService struct {
	observations repository.ObservationsRepository
	bacteria     repository.BacteriaRepository
	antibiotics  repository.AntibioticsRepository
	regions      repository.RegionsRepository
	logger       *zap.Logger

	now func() time.Time // injectable for tests
}

func NewDashboardService(
	observations repository.ObservationsRepository,
	bacteria repository.BacteriaRepository,
	antibiotics repository.AntibioticsRepository,
	regions repository.RegionsRepository,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		observations: observations,
		bacteria:     bacteria,
		antibiotics:  antibiotics,
		regions:      regions,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *dashboardService) GetSummary(ctx context.Context, filter domain.FilterSpec) (domain.ResistanceSummary, error) {
	observations, err := s.fetch(ctx, filter)
	if err != nil {
		return domain.ResistanceSummary{}, err
	}
	return aggregate.Summary(observations), nil
}

func (s *dashboardService) GetTrends(ctx context.Context, filter domain.FilterSpec) ([]domain.ResistanceTrend, error) {
	observations, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	bacteria, err := s.bacteria.ListBacteria(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bacteria catalog: %w", err)
	}

	s.warnMissingBacteria(observations, bacteria)

	return aggregate.Trends(observations, bacteria), nil
}

func (s *dashboardService) GetEffectiveness(ctx context.Context, filter domain.FilterSpec) ([]domain.AntibioticEffectiveness, error) {
	observations, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	antibiotics, err := s.antibiotics.ListAntibiotics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load antibiotic catalog: %w", err)
	}
	regions, err := s.regions.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load region catalog: %w", err)
	}
	return aggregate.Effectiveness(observations, antibiotics, regions), nil
}

func (s *dashboardService) fetch(ctx context.Context, filter domain.FilterSpec) ([]domain.Observation, error) {
	resolved := filter.Resolve(s.now())
	observations, err := s.observations.Query(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	return observations, nil
}

// warnMissingBacteria flags observations whose bacteria id has no catalog
// entry. They still make it into the trend output under a placeholder
// name; the log line is a data-quality signal, never a failure.
func (s *dashboardService) warnMissingBacteria(observations []domain.Observation, bacteria []domain.Bacteria) {
	known := make(map[int]struct{}, len(bacteria))
	for _, b := range bacteria {
		known[b.ID] = struct{}{}
	}
	missing := make(map[int]struct{})
	for _, o := range observations {
		if _, ok := known[o.BacteriaID]; !ok {
			missing[o.BacteriaID] = struct{}{}
		}
	}
	for id := range missing {
		s.logger.Warn("observation references unknown bacteria id",
			zap.Int("bacteria_id", id))
	}
}
