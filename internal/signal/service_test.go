package signal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldsightlab/goldsight/models"
)

type stubStore struct {
	snapshot *models.IndicatorSnapshot
	news     []models.NewsItem
	factors  []models.EconomicFactor
	saved    []*models.Signal
}

func (s *stubStore) LatestSnapshot(context.Context) (*models.IndicatorSnapshot, error) {
	return s.snapshot, nil
}

func (s *stubStore) RecentNews(context.Context, time.Duration, int) ([]models.NewsItem, error) {
	return s.news, nil
}

func (s *stubStore) RecentFactors(context.Context, time.Duration, int) ([]models.EconomicFactor, error) {
	return s.factors, nil
}

func (s *stubStore) SaveSignal(_ context.Context, sig *models.Signal) error {
	s.saved = append(s.saved, sig)
	return nil
}

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) Send(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func defaultOptions() Options {
	return Options{NewsWindowHours: 24, NewsLimit: 10, MacroWindowDays: 7, MacroLimit: 5}
}

func TestServiceRun(t *testing.T) {
	ctx := context.Background()

	t.Run("missing snapshot yields unsuccessful result", func(t *testing.T) {
		store := &stubStore{}
		svc := NewService(store, nil, DefaultWeights(), defaultOptions())

		res, err := svc.Run(ctx)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "no technical data available", res.Error)
		assert.Empty(t, store.saved)
	})

	t.Run("full cycle persists and notifies", func(t *testing.T) {
		store := &stubStore{
			snapshot: testSnapshot(2000),
			news: []models.NewsItem{
				{Title: "a", PublishedAt: time.Now(), ImpactOnGold: models.ImpactPositive, Confidence: 80},
			},
			factors: []models.EconomicFactor{
				{EventName: "Federal Funds Rate", ReleaseDate: time.Now(), ImpactOnGold: models.ImpactPositive,
					Confidence: 85, Importance: models.ImportanceHigh, Summary: "rate cut"},
			},
		}
		notify := &stubNotifier{}
		svc := NewService(store, notify, DefaultWeights(), defaultOptions())

		res, err := svc.Run(ctx)
		require.NoError(t, err)
		require.True(t, res.Success)
		require.NotNil(t, res.Signal)

		assert.Greater(t, res.Signal.OverallScore, 50)
		require.Len(t, store.saved, 1)
		assert.Equal(t, res.Signal, store.saved[0])
		require.Len(t, notify.messages, 1)
		assert.Equal(t, res.Signal.Summary, notify.messages[0])
	})

	t.Run("no news or macro degrades to neutral scores", func(t *testing.T) {
		store := &stubStore{snapshot: testSnapshot(2000)}
		svc := NewService(store, nil, DefaultWeights(), defaultOptions())

		res, err := svc.Run(ctx)
		require.NoError(t, err)
		require.True(t, res.Success)
		assert.Equal(t, 50, res.Signal.NewsScore)
		assert.Equal(t, 50, res.Signal.MacroScore)
	})
}
