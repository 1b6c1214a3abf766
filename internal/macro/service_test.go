package macro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldsightlab/goldsight/internal/api/fred"
	"github.com/goldsightlab/goldsight/models"
)

type stubSource struct {
	observations map[string][]fred.Observation
	errors       map[string]error
}

func (s *stubSource) FetchSeries(_ context.Context, seriesID string, _ int) ([]fred.Observation, error) {
	if err := s.errors[seriesID]; err != nil {
		return nil, err
	}
	return s.observations[seriesID], nil
}

type stubStore struct {
	existing map[string]bool
	saved    []*models.EconomicFactor
}

func (s *stubStore) FactorExists(_ context.Context, eventName string, _ time.Time) (bool, error) {
	return s.existing[eventName], nil
}

func (s *stubStore) SaveFactor(_ context.Context, factor *models.EconomicFactor) error {
	s.saved = append(s.saved, factor)
	return nil
}

func TestServiceRun(t *testing.T) {
	ctx := context.Background()
	latest := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	prior := latest.AddDate(0, -1, 0)

	t.Run("new release is assessed and saved", func(t *testing.T) {
		source := &stubSource{observations: map[string][]fred.Observation{
			"FEDFUNDS": {{Date: latest, Value: 5.50}, {Date: prior, Value: 5.25}},
		}}
		store := &stubStore{existing: map[string]bool{}}
		svc := NewService(source, store, 5)

		factors, err := svc.Run(ctx)
		require.NoError(t, err)
		require.Len(t, factors, 1)

		f := factors[0]
		assert.Equal(t, "Federal Funds Rate", f.EventName)
		assert.Equal(t, "FEDFUNDS", f.SeriesID)
		assert.Equal(t, models.ImpactNegative, f.ImpactOnGold)
		assert.Equal(t, 85, f.Confidence)
		assert.Equal(t, "FRED", f.Source)
		require.NotNil(t, f.Change)
		assert.InDelta(t, 0.25, *f.Change, 1e-9)
		require.NotNil(t, f.ChangePercent)
		assert.InDelta(t, 4.76, *f.ChangePercent, 1e-9)
		require.Len(t, store.saved, 1)
	})

	t.Run("already-stored release is returned but not re-saved", func(t *testing.T) {
		source := &stubSource{observations: map[string][]fred.Observation{
			"UNRATE": {{Date: latest, Value: 4.2}, {Date: prior, Value: 3.8}},
		}}
		store := &stubStore{existing: map[string]bool{"Unemployment Rate": true}}
		svc := NewService(source, store, 5)

		factors, err := svc.Run(ctx)
		require.NoError(t, err)
		require.Len(t, factors, 1)
		assert.Equal(t, "Unemployment Rate", factors[0].EventName)
		assert.Empty(t, store.saved)
	})

	t.Run("fetch failure skips the series without aborting", func(t *testing.T) {
		source := &stubSource{
			observations: map[string][]fred.Observation{
				"UNRATE": {{Date: latest, Value: 4.2}, {Date: prior, Value: 3.8}},
			},
			errors: map[string]error{"FEDFUNDS": errors.New("api down")},
		}
		store := &stubStore{existing: map[string]bool{}}
		svc := NewService(source, store, 5)

		factors, err := svc.Run(ctx)
		require.NoError(t, err)
		require.Len(t, factors, 1)
		assert.Equal(t, "UNRATE", factors[0].SeriesID)
	})

	t.Run("single observation assesses without a prior reading", func(t *testing.T) {
		source := &stubSource{observations: map[string][]fred.Observation{
			"GDP": {{Date: latest, Value: 28000}},
		}}
		store := &stubStore{existing: map[string]bool{}}
		svc := NewService(source, store, 5)

		factors, err := svc.Run(ctx)
		require.NoError(t, err)
		require.Len(t, factors, 1)
		assert.Equal(t, models.ImpactNeutral, factors[0].ImpactOnGold)
		assert.Nil(t, factors[0].Previous)
		assert.Nil(t, factors[0].Change)
	})
}
