package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"amr-data/internal/domain"
	"amr-data/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validRecord() domain.NewObservation {
	return domain.NewObservation{
		BacteriaID:       1,
		AntibioticID:     1,
		RegionID:         1,
		SampleDate:       date(2024, time.May, 1),
		TotalSamples:     100,
		ResistantSamples: 20,
	}
}

func TestObservationCreateValidates(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewObservationService(store, nil, zap.NewNop())

	created, err := svc.Create(ctx, validRecord())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	bad := validRecord()
	bad.ResistantSamples = bad.TotalSamples + 1
	_, err = svc.Create(ctx, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidObservation)
}

func TestObservationBulkCreateAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewObservationService(store, nil, zap.NewNop())

	bad := validRecord()
	bad.BacteriaID = 0

	_, _, err := svc.BulkCreate(ctx, []domain.NewObservation{validRecord(), bad, validRecord()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidObservation)
	assert.Contains(t, err.Error(), "record 1:")

	// The valid records before the bad one must not have been stored.
	stored, err := store.Query(ctx, domain.ResolvedFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestObservationBulkCreateStoresBatch(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewObservationService(store, nil, zap.NewNop())

	batchID, created, err := svc.BulkCreate(ctx, []domain.NewObservation{validRecord(), validRecord()})
	require.NoError(t, err)
	assert.NotEmpty(t, batchID)
	assert.Len(t, created, 2)
}

func TestObservationBulkCreateRejectsEmptyBatch(t *testing.T) {
	ctx := context.Background()
	svc := NewObservationService(repository.NewMemoryStore(), nil, zap.NewNop())

	_, _, err := svc.BulkCreate(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidObservation)
}

func TestObservationListAppliesFilter(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewObservationService(store, nil, zap.NewNop()).(*observationService)
	svc.now = func() time.Time { return date(2024, time.June, 15) }

	first := validRecord()
	second := validRecord()
	second.BacteriaID = 2
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.FilterSpec{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.List(ctx, domain.FilterSpec{BacteriaID: intp(2)})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].BacteriaID)
}

type stubFeed struct {
	records []domain.NewObservation
	err     error

	gotSince time.Time
}

func (f *stubFeed) FetchObservations(_ context.Context, since time.Time) ([]domain.NewObservation, error) {
	f.gotSince = since
	return f.records, f.err
}

func TestSyncFeedStoresFetchedRecords(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	feed := &stubFeed{records: []domain.NewObservation{validRecord(), validRecord()}}
	svc := NewObservationService(store, feed, zap.NewNop())

	since := date(2024, time.May, 1)
	n, err := svc.SyncFeed(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, since, feed.gotSince)

	stored, err := store.Query(ctx, domain.ResolvedFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSyncFeedEmptyResultIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewObservationService(store, &stubFeed{}, zap.NewNop())

	n, err := svc.SyncFeed(ctx, date(2024, time.May, 1))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSyncFeedPropagatesFetchError(t *testing.T) {
	ctx := context.Background()
	feed := &stubFeed{err: errors.New("upstream timeout")}
	svc := NewObservationService(repository.NewMemoryStore(), feed, zap.NewNop())

	_, err := svc.SyncFeed(ctx, date(2024, time.May, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch surveillance feed")
}

func TestSyncFeedWithoutFeedConfigured(t *testing.T) {
	ctx := context.Background()
	svc := NewObservationService(repository.NewMemoryStore(), nil, zap.NewNop())

	_, err := svc.SyncFeed(ctx, date(2024, time.May, 1))
	require.Error(t, err)
}
