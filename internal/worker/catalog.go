package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"dealdrop/internal/domain/entity"
	"dealdrop/pkg/logx"
)

const (
	defaultRefreshInterval   = 5 * time.Minute
	defaultHotDealThreshold  = 40
	alertDedupeTTL           = 12 * time.Hour
	alertDedupeCleanupPeriod = time.Hour
)

type DealSource interface {
	FetchDeals(ctx context.Context) ([]entity.Deal, error)
}

type DealStore interface {
	SaveAll(ctx context.Context, deals []entity.Deal) error
}

// CatalogRefresher periodically pulls the deal feed, persists the batch and
// pushes heavily discounted deals onto the alert channel. An alert for a deal
// is suppressed until its price changes or the dedupe window expires.
type CatalogRefresher struct {
	source   DealSource
	store    DealStore
	hotDeals chan<- entity.Deal

	refreshInterval  time.Duration
	hotDealThreshold int
	alerted          *cache.Cache

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewCatalogRefresher(source DealSource, store DealStore, hotDeals chan<- entity.Deal) *CatalogRefresher {
	return &CatalogRefresher{
		source:           source,
		store:            store,
		hotDeals:         hotDeals,
		refreshInterval:  defaultRefreshInterval,
		hotDealThreshold: defaultHotDealThreshold,
		alerted:          cache.New(alertDedupeTTL, alertDedupeCleanupPeriod),
	}
}

func (w *CatalogRefresher) WithRefreshInterval(interval time.Duration) *CatalogRefresher {
	if interval > 0 {
		w.refreshInterval = interval
	}

	return w
}

func (w *CatalogRefresher) WithHotDealThreshold(percent int) *CatalogRefresher {
	w.hotDealThreshold = percent
	return w
}

func (w *CatalogRefresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("refresher is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(runCtx).Error("catalog refresher stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *CatalogRefresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *CatalogRefresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.isRunning
}

func (w *CatalogRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("catalog refresher started", slog.Duration("interval", w.refreshInterval))

	if err := w.refresh(ctx); err != nil {
		logger(ctx).Error("catalog refresh failed", logx.Error(err))
	}

	ticker := time.NewTicker(w.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("catalog refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				logger(ctx).Error("catalog refresh failed", logx.Error(err))
			}
		}
	}
}

func (w *CatalogRefresher) refresh(ctx context.Context) error {
	deals, err := w.source.FetchDeals(ctx)
	if err != nil {
		return fmt.Errorf("fetch deals: %w", err)
	}

	if err := w.store.SaveAll(ctx, deals); err != nil {
		return fmt.Errorf("save deals: %w", err)
	}

	logger(ctx).Info("catalog refreshed", slog.Int("count", len(deals)))

	for _, deal := range deals {
		w.maybeAlert(ctx, deal)
	}

	return nil
}

func (w *CatalogRefresher) maybeAlert(ctx context.Context, deal entity.Deal) {
	if w.hotDeals == nil || deal.DiscountPercent() < w.hotDealThreshold {
		return
	}

	key := fmt.Sprintf("%s:%d", deal.ID, deal.Price)
	if _, seen := w.alerted.Get(key); seen {
		return
	}

	select {
	case w.hotDeals <- deal:
		w.alerted.SetDefault(key, struct{}{})
	case <-ctx.Done():
	default:
		logger(ctx).Warn("hot deal alert dropped, channel full",
			slog.String(logx.FieldDealID, deal.ID),
			slog.String(logx.FieldPlatform, deal.Platform.String()))
	}
}
