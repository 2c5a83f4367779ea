package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leora/backend/internal/model"
)

// PgPanelRepository は PanelRepository の PostgreSQL 実装
type PgPanelRepository struct {
	pool *pgxpool.Pool
}

// NewPgPanelRepository は PgPanelRepository を生成する
func NewPgPanelRepository(pool *pgxpool.Pool) *PgPanelRepository {
	return &PgPanelRepository{pool: pool}
}

const panelColumns = `id, name, type, unit_price, area_per_unit, units_per_truck, created_at, updated_at`

func scanPanel(row pgx.Row) (*model.Panel, error) {
	var p model.Panel
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.UnitPrice, &p.AreaPerUnit, &p.UnitsPerTruck, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List はパネル一覧を種別・名前順で返す
func (r *PgPanelRepository) List(ctx context.Context) ([]*model.Panel, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+panelColumns+` FROM panels ORDER BY type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var panels []*model.Panel
	for rows.Next() {
		p, err := scanPanel(rows)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}
	return panels, rows.Err()
}

// GetByID は ID でパネルを取得する
func (r *PgPanelRepository) GetByID(ctx context.Context, id string) (*model.Panel, error) {
	p, err := scanPanel(r.pool.QueryRow(ctx, `SELECT `+panelColumns+` FROM panels WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create はパネルを作成する
func (r *PgPanelRepository) Create(ctx context.Context, panel *model.Panel) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO panels (id, name, type, unit_price, area_per_unit, units_per_truck)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		panel.ID, panel.Name, panel.Type, panel.UnitPrice, panel.AreaPerUnit, panel.UnitsPerTruck,
	).Scan(&panel.CreatedAt, &panel.UpdatedAt)
}

// Update はパネルの全項目を更新する
func (r *PgPanelRepository) Update(ctx context.Context, panel *model.Panel) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE panels
		 SET name=$1, type=$2, unit_price=$3, area_per_unit=$4, units_per_truck=$5, updated_at=NOW()
		 WHERE id=$6
		 RETURNING updated_at`,
		panel.Name, panel.Type, panel.UnitPrice, panel.AreaPerUnit, panel.UnitsPerTruck, panel.ID,
	).Scan(&panel.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete はパネルを削除する。見積書は削除済みの ID を保持し続ける
func (r *PgPanelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM panels WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
