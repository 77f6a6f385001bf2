package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"dealdrop/internal/domain"
	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/errcodes"
)

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Upsert inserts a deal or refreshes an existing one by id.
func (r *DealRepository) Upsert(ctx context.Context, deal *entity.Deal) error {
	query := `
		INSERT INTO deals (
			id, title, price, original_price, discount, product_url,
			platform, image_url, rating, reviews, category, created_at
		) VALUES (
			:id, :title, :price, :original_price, :discount, :product_url,
			:platform, :image_url, :rating, :reviews, :category, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			discount = EXCLUDED.discount,
			product_url = EXCLUDED.product_url,
			platform = EXCLUDED.platform,
			image_url = EXCLUDED.image_url,
			rating = EXCLUDED.rating,
			reviews = EXCLUDED.reviews,
			category = EXCLUDED.category`

	if _, err := r.db.NamedExecContext(ctx, query, fromDeal(deal)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert deal")
	}

	return nil
}

func (r *DealRepository) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	query := `
		SELECT id, title, price, original_price, discount, product_url,
		       platform, image_url, rating, reviews, category, created_at
		FROM deals
		WHERE id = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get deal")
	}

	return schema.toDomain(), nil
}

// List returns deals ordered newest first, optionally filtered by platform.
func (r *DealRepository) List(
	ctx context.Context,
	platform *value.Platform,
	limit, offset int,
) ([]entity.Deal, error) {
	query := `
		SELECT id, title, price, original_price, discount, product_url,
		       platform, image_url, rating, reviews, category, created_at
		FROM deals`

	args := []any{limit, offset}

	if platform != nil {
		query += ` WHERE platform = $3`
		args = append(args, platform.String())
	}

	query += `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, s := range schemas {
		deals = append(deals, *s.toDomain())
	}

	return deals, nil
}

func (r *DealRepository) CountByPlatform(ctx context.Context) (map[value.Platform]int, error) {
	query := `
		SELECT platform, COUNT(*) AS count
		FROM deals
		GROUP BY platform`

	var rows []struct {
		Platform string `db:"platform"`
		Count    int    `db:"count"`
	}

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to count deals")
	}

	counts := make(map[value.Platform]int, len(rows))
	for _, row := range rows {
		counts[value.Platform(row.Platform)] = row.Count
	}

	return counts, nil
}

// withTx runs fn inside a transaction.
func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit transaction")
	}

	return nil
}

// SaveAll upserts a refreshed batch of deals atomically, so readers never
// observe a partially applied refresh.
func (r *DealRepository) SaveAll(ctx context.Context, deals []entity.Deal) error {
	if len(deals) == 0 {
		return nil
	}

	query := `
		INSERT INTO deals (
			id, title, price, original_price, discount, product_url,
			platform, image_url, rating, reviews, category, created_at
		) VALUES (
			:id, :title, :price, :original_price, :discount, :product_url,
			:platform, :image_url, :rating, :reviews, :category, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			discount = EXCLUDED.discount,
			product_url = EXCLUDED.product_url,
			platform = EXCLUDED.platform,
			image_url = EXCLUDED.image_url,
			rating = EXCLUDED.rating,
			reviews = EXCLUDED.reviews,
			category = EXCLUDED.category`

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		for i := range deals {
			if _, err := tx.NamedExecContext(ctx, query, fromDeal(&deals[i])); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to save deal batch")
			}
		}

		return nil
	})
}
