package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leora/backend/internal/model"
)

// PgParameterRepository は ParameterRepository の PostgreSQL 実装。
// estimate_parameters は id=1 の 1 行だけを持つ
type PgParameterRepository struct {
	pool *pgxpool.Pool
}

// NewPgParameterRepository は PgParameterRepository を生成する
func NewPgParameterRepository(pool *pgxpool.Pool) *PgParameterRepository {
	return &PgParameterRepository{pool: pool}
}

// Get は保存済みの係数を返す。未保存の場合はデフォルト値を返す
func (r *PgParameterRepository) Get(ctx context.Context) (*model.Parameters, error) {
	var p model.Parameters
	err := r.pool.QueryRow(ctx,
		`SELECT waste_factor, joint_factor_wall, joint_factor_floor, labor_rate, joint_unit_price, updated_at
		 FROM estimate_parameters WHERE id = 1`,
	).Scan(&p.WasteFactor, &p.JointFactorWall, &p.JointFactorFloor, &p.LaborRate, &p.JointUnitPrice, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		def := model.DefaultParameters()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save は係数を保存する
func (r *PgParameterRepository) Save(ctx context.Context, params *model.Parameters) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO estimate_parameters (id, waste_factor, joint_factor_wall, joint_factor_floor, labor_rate, joint_unit_price)
		 VALUES (1, $1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   waste_factor = EXCLUDED.waste_factor,
		   joint_factor_wall = EXCLUDED.joint_factor_wall,
		   joint_factor_floor = EXCLUDED.joint_factor_floor,
		   labor_rate = EXCLUDED.labor_rate,
		   joint_unit_price = EXCLUDED.joint_unit_price,
		   updated_at = NOW()
		 RETURNING updated_at`,
		params.WasteFactor, params.JointFactorWall, params.JointFactorFloor, params.LaborRate, params.JointUnitPrice,
	).Scan(&params.UpdatedAt)
}
