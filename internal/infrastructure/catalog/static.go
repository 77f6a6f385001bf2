package catalog

import (
	"context"
	"time"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/value"
)

// StaticSource serves a built-in catalog. It backs the storefront when no
// upstream deal feed is reachable, so the product grid is never empty.
type StaticSource struct {
	deals []entity.Deal
}

func NewStaticSource() *StaticSource {
	return &StaticSource{deals: seedDeals(time.Now())}
}

func (s *StaticSource) FetchDeals(_ context.Context) ([]entity.Deal, error) {
	deals := make([]entity.Deal, len(s.deals))
	copy(deals, s.deals)

	return deals, nil
}

func seedDeals(now time.Time) []entity.Deal {
	return []entity.Deal{
		{
			ID:            "1",
			Title:         "Samsung Galaxy M32 (Ice Blue, 128 GB)",
			Price:         14999,
			OriginalPrice: price(19999),
			Discount:      25,
			ProductURL:    "https://flipkart.com/samsung-galaxy-m32",
			Platform:      value.PlatformFlipkart,
			ImageURL:      "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop",
			Rating:        4.2,
			Reviews:       1523,
			Category:      "Electronics",
			CreatedAt:     now,
		},
		{
			ID:            "2",
			Title:         "Apple iPhone 13 (Blue, 128 GB)",
			Price:         59900,
			OriginalPrice: price(69900),
			Discount:      14,
			ProductURL:    "https://amazon.in/apple-iphone-13",
			Platform:      value.PlatformAmazon,
			ImageURL:      "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop",
			Rating:        4.5,
			Reviews:       2341,
			Category:      "Electronics",
			CreatedAt:     now,
		},
		{
			ID:            "3",
			Title:         "Fresh Organic Bananas (1 kg)",
			Price:         89,
			OriginalPrice: price(120),
			Discount:      26,
			ProductURL:    "https://jiomart.com/bananas",
			Platform:      value.PlatformJiomart,
			ImageURL:      "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=300&h=300&fit=crop",
			Rating:        4.0,
			Reviews:       234,
			Category:      "Groceries",
			CreatedAt:     now,
		},
		{
			ID:            "4",
			Title:         "Roadster Cotton Casual Shirt",
			Price:         899,
			OriginalPrice: price(1599),
			Discount:      44,
			ProductURL:    "https://myntra.com/roadster-shirt",
			Platform:      value.PlatformMyntra,
			ImageURL:      "https://images.unsplash.com/photo-1586790170083-2f9ceadc732d?w=300&h=300&fit=crop",
			Rating:        4.1,
			Reviews:       867,
			Category:      "Fashion",
			CreatedAt:     now,
		},
		{
			ID:            "5",
			Title:         "Pizza Margherita (Regular)",
			Price:         199,
			OriginalPrice: price(299),
			Discount:      33,
			ProductURL:    "https://swiggy.com/pizza",
			Platform:      value.PlatformSwiggy,
			ImageURL:      "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=300&h=300&fit=crop",
			Rating:        4.3,
			Reviews:       456,
			Category:      "Food",
			CreatedAt:     now,
		},
		{
			ID:            "6",
			Title:         "Fresho Tomatoes (1 kg)",
			Price:         45,
			OriginalPrice: price(60),
			Discount:      25,
			ProductURL:    "https://bigbasket.com/tomatoes",
			Platform:      value.PlatformBigbasket,
			ImageURL:      "https://images.unsplash.com/photo-1592924357228-91a4daadcfea?w=300&h=300&fit=crop",
			Rating:        4.2,
			Reviews:       123,
			Category:      "Groceries",
			CreatedAt:     now,
		},
	}
}

func price(v int64) *int64 {
	return &v
}
