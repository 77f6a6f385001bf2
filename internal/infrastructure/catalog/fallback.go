package catalog

import (
	"context"

	"dealdrop/internal/domain/entity"
	"dealdrop/pkg/logx"
)

type source interface {
	FetchDeals(ctx context.Context) ([]entity.Deal, error)
}

// FallbackSource tries the upstream feed first and degrades to the built-in
// catalog when the feed is down, mirroring how the storefront falls back to
// local data.
type FallbackSource struct {
	primary  source
	fallback source
}

func NewFallbackSource(primary, fallback source) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
	}
}

func (s *FallbackSource) FetchDeals(ctx context.Context) ([]entity.Deal, error) {
	deals, err := s.primary.FetchDeals(ctx)
	if err == nil {
		return deals, nil
	}

	logger(ctx).Warn("deal feed unavailable, serving built-in catalog", logx.Error(err))

	return s.fallback.FetchDeals(ctx)
}
