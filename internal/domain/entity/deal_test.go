package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain/entity"
)

func TestDealDiscountPercent(t *testing.T) {
	rq := require.New(t)

	price := func(v int64) *int64 { return &v }

	testCases := []struct {
		name string
		deal entity.Deal
		want int
	}{
		{
			name: "Derived from both prices",
			deal: entity.Deal{Price: 14999, OriginalPrice: price(19999)},
			want: 25,
		},
		{
			name: "Derived wins over stored discount",
			deal: entity.Deal{Price: 59900, OriginalPrice: price(69900), Discount: 50},
			want: 14,
		},
		{
			name: "Stored discount when original price absent",
			deal: entity.Deal{Price: 899, Discount: 44},
			want: 44,
		},
		{
			name: "Zero when nothing known",
			deal: entity.Deal{Price: 100},
			want: 0,
		},
		{
			name: "Rounded to nearest percent",
			deal: entity.Deal{Price: 89, OriginalPrice: price(120)},
			want: 26,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, tc.deal.DiscountPercent())
		})
	}
}
