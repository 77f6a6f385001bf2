package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/value"
)

type fakeSource struct {
	mu    sync.Mutex
	deals []entity.Deal
	calls int
}

func (s *fakeSource) FetchDeals(_ context.Context) ([]entity.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return s.deals, nil
}

func (s *fakeSource) fetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

type fakeStore struct {
	mu    sync.Mutex
	saved [][]entity.Deal
}

func (s *fakeStore) SaveAll(_ context.Context, deals []entity.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved = append(s.saved, deals)

	return nil
}

func (s *fakeStore) batches() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.saved)
}

func hotDeal(id string, price, original int64) entity.Deal {
	return entity.Deal{
		ID:            id,
		Title:         "test deal",
		Price:         price,
		OriginalPrice: &original,
		ProductURL:    "https://flipkart.com/test",
		Platform:      value.PlatformFlipkart,
	}
}

func TestCatalogRefresherPersistsAndAlerts(t *testing.T) {
	source := &fakeSource{deals: []entity.Deal{
		hotDeal("hot", 50, 100),
		hotDeal("mild", 90, 100),
	}}
	store := &fakeStore{}
	alerts := make(chan entity.Deal, 4)

	refresher := NewCatalogRefresher(source, store, alerts).
		WithRefreshInterval(10 * time.Millisecond).
		WithHotDealThreshold(40)

	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	require.Eventually(t, func() bool {
		return store.batches() >= 2
	}, time.Second, 5*time.Millisecond)

	refresher.Stop()
	require.False(t, refresher.IsRunning())

	// Only the 50% deal crosses the threshold, and only once despite
	// repeated refreshes of the same batch.
	require.Len(t, alerts, 1)
	require.Equal(t, "hot", (<-alerts).ID)
}

func TestCatalogRefresherAlertsAgainOnPriceChange(t *testing.T) {
	source := &fakeSource{deals: []entity.Deal{hotDeal("hot", 50, 100)}}
	store := &fakeStore{}
	alerts := make(chan entity.Deal, 4)

	refresher := NewCatalogRefresher(source, store, alerts).WithHotDealThreshold(40)

	require.NoError(t, refresher.refresh(context.Background()))
	require.NoError(t, refresher.refresh(context.Background()))
	require.Len(t, alerts, 1)

	source.deals = []entity.Deal{hotDeal("hot", 40, 100)}

	require.NoError(t, refresher.refresh(context.Background()))
	require.Len(t, alerts, 2)
}

func TestCatalogRefresherStartTwice(t *testing.T) {
	refresher := NewCatalogRefresher(&fakeSource{}, &fakeStore{}, nil).
		WithRefreshInterval(time.Hour)

	require.NoError(t, refresher.Start(context.Background()))
	defer refresher.Stop()

	require.Error(t, refresher.Start(context.Background()))

	refresher.Stop()
	require.NoError(t, refresher.Start(context.Background()))
	refresher.Stop()
}
