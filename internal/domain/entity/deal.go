package entity

import (
	"math"
	"time"

	"dealdrop/internal/domain/value"
)

// Deal is a product offer from one of the supported platforms. Prices are whole
// rupees; the unlock fee is charged separately in paise.
type Deal struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Price         int64          `json:"price" db:"price"`
	OriginalPrice *int64         `json:"original_price,omitempty" db:"original_price"`
	Discount      int            `json:"discount,omitempty" db:"discount"`
	ProductURL    string         `json:"product_url" db:"product_url"`
	Platform      value.Platform `json:"platform" db:"platform"`
	ImageURL      string         `json:"image_url,omitempty" db:"image_url"`
	Rating        float64        `json:"rating,omitempty" db:"rating"`
	Reviews       int            `json:"reviews,omitempty" db:"reviews"`
	Category      string         `json:"category,omitempty" db:"category"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// DiscountPercent derives the discount from the two prices when the original
// price is known; the stored discount field is only a fallback.
func (d Deal) DiscountPercent() int {
	if d.OriginalPrice != nil && *d.OriginalPrice > 0 {
		return int(math.Round(float64(*d.OriginalPrice-d.Price) / float64(*d.OriginalPrice) * 100))
	}

	return d.Discount
}
