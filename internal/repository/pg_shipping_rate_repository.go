package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leora/backend/internal/model"
)

// PgShippingRateRepository は ShippingRateRepository の PostgreSQL 実装
type PgShippingRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgShippingRateRepository は PgShippingRateRepository を生成する
func NewPgShippingRateRepository(pool *pgxpool.Pool) *PgShippingRateRepository {
	return &PgShippingRateRepository{pool: pool}
}

// List は配送料金を仕向け地キー順で返す
func (r *PgShippingRateRepository) List(ctx context.Context) ([]*model.ShippingRate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT destination_key, cost FROM shipping_rates ORDER BY destination_key`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*model.ShippingRate
	for rows.Next() {
		var sr model.ShippingRate
		if err := rows.Scan(&sr.DestinationKey, &sr.Cost); err != nil {
			return nil, err
		}
		rates = append(rates, &sr)
	}
	return rates, rows.Err()
}

// Upsert は仕向け地ごとに 1 件だけ料金を保持する
func (r *PgShippingRateRepository) Upsert(ctx context.Context, rate *model.ShippingRate) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO shipping_rates (destination_key, cost)
		 VALUES ($1, $2)
		 ON CONFLICT (destination_key) DO UPDATE SET cost = EXCLUDED.cost, updated_at = NOW()`,
		rate.DestinationKey, rate.Cost,
	)
	return err
}

// Delete は仕向け地の料金を削除する
func (r *PgShippingRateRepository) Delete(ctx context.Context, destinationKey string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shipping_rates WHERE destination_key=$1`, destinationKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
