package persistence

import (
	"database/sql"
	"time"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/value"
)

// dealSchema maps a deals table row.
type dealSchema struct {
	ID            string          `db:"id"`
	Title         string          `db:"title"`
	Price         int64           `db:"price"`
	OriginalPrice sql.NullInt64   `db:"original_price"`
	Discount      int             `db:"discount"`
	ProductURL    string          `db:"product_url"`
	Platform      string          `db:"platform"`
	ImageURL      sql.NullString  `db:"image_url"`
	Rating        sql.NullFloat64 `db:"rating"`
	Reviews       sql.NullInt64   `db:"reviews"`
	Category      sql.NullString  `db:"category"`
	CreatedAt     time.Time       `db:"created_at"`
}

func fromDeal(d *entity.Deal) *dealSchema {
	s := &dealSchema{
		ID:         d.ID,
		Title:      d.Title,
		Price:      d.Price,
		Discount:   d.Discount,
		ProductURL: d.ProductURL,
		Platform:   d.Platform.String(),
		CreatedAt:  d.CreatedAt,
	}

	if d.OriginalPrice != nil {
		s.OriginalPrice = sql.NullInt64{Int64: *d.OriginalPrice, Valid: true}
	}

	if d.ImageURL != "" {
		s.ImageURL = sql.NullString{String: d.ImageURL, Valid: true}
	}

	if d.Rating != 0 {
		s.Rating = sql.NullFloat64{Float64: d.Rating, Valid: true}
	}

	if d.Reviews != 0 {
		s.Reviews = sql.NullInt64{Int64: int64(d.Reviews), Valid: true}
	}

	if d.Category != "" {
		s.Category = sql.NullString{String: d.Category, Valid: true}
	}

	return s
}

func (s *dealSchema) toDomain() *entity.Deal {
	d := &entity.Deal{
		ID:         s.ID,
		Title:      s.Title,
		Price:      s.Price,
		Discount:   s.Discount,
		ProductURL: s.ProductURL,
		Platform:   value.Platform(s.Platform),
		ImageURL:   s.ImageURL.String,
		Rating:     s.Rating.Float64,
		Reviews:    int(s.Reviews.Int64),
		Category:   s.Category.String,
		CreatedAt:  s.CreatedAt,
	}

	if s.OriginalPrice.Valid {
		original := s.OriginalPrice.Int64
		d.OriginalPrice = &original
	}

	return d
}
