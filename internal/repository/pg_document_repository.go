package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leora/backend/internal/model"
)

// PgDocumentRepository は DocumentRepository の PostgreSQL 実装
type PgDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewPgDocumentRepository は PgDocumentRepository を生成する
func NewPgDocumentRepository(pool *pgxpool.Pool) *PgDocumentRepository {
	return &PgDocumentRepository{pool: pool}
}

const documentColumns = `id, reference_number, status,
	project_name, province, regency, address,
	client_name, client_phone, client_email,
	project_category, project_description, estimated_delivery,
	compute_walls, perimeter, wall_height, wall_panel_id,
	compute_floor, segments, floor_panel_id, destination_key,
	snapshot, deleted_at, created_at, updated_at`

func scanDocument(row pgx.Row) (*model.Document, error) {
	var (
		d            model.Document
		segmentsJSON []byte
		snapshotJSON []byte
	)
	err := row.Scan(
		&d.ID, &d.ReferenceNumber, &d.Status,
		&d.ProjectName, &d.Province, &d.Regency, &d.Address,
		&d.ClientName, &d.ClientPhone, &d.ClientEmail,
		&d.ProjectCategory, &d.ProjectDescription, &d.EstimatedDelivery,
		&d.ComputeWalls, &d.Perimeter, &d.WallHeight, &d.WallPanelID,
		&d.ComputeFloor, &segmentsJSON, &d.FloorPanelID, &d.DestinationKey,
		&snapshotJSON, &d.DeletedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if d.Segments, err = decodeSegments(segmentsJSON); err != nil {
		return nil, err
	}
	if d.Snapshot, err = decodeSnapshot(snapshotJSON); err != nil {
		return nil, err
	}
	return &d, nil
}

func decodeSegments(b []byte) ([]model.Segment, error) {
	segments := []model.Segment{}
	if len(b) == 0 {
		return segments, nil
	}
	if err := json.Unmarshal(b, &segments); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	return segments, nil
}

func encodeSegments(segments []model.Segment) ([]byte, error) {
	if segments == nil {
		segments = []model.Segment{}
	}
	return json.Marshal(segments)
}

func decodeSnapshot(b []byte) (*model.Snapshot, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var s model.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// encodeSnapshot returns nil (SQL NULL) for a nil snapshot.
func encodeSnapshot(s *model.Snapshot) (any, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// List は削除されていない見積書を新しい順に返す
func (r *PgDocumentRepository) List(ctx context.Context, limit, offset int) ([]*model.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE deleted_at IS NULL
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetByID は削除されていない見積書を ID で取得する
func (r *PgDocumentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByIDIncludingDeleted は監査用に削除済みも含めて取得する
func (r *PgDocumentRepository) GetByIDIncludingDeleted(ctx context.Context, id string) (*model.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

func (r *PgDocumentRepository) get(ctx context.Context, query, id string) (*model.Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CountAll は削除済みを含む全件数を返す
func (r *PgDocumentRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// Create は見積書を作成する
func (r *PgDocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	segments, err := encodeSegments(doc.Segments)
	if err != nil {
		return err
	}
	snapshot, err := encodeSnapshot(doc.Snapshot)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO documents (
			id, reference_number, status,
			project_name, province, regency, address,
			client_name, client_phone, client_email,
			project_category, project_description, estimated_delivery,
			compute_walls, perimeter, wall_height, wall_panel_id,
			compute_floor, segments, floor_panel_id, destination_key,
			snapshot
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		 RETURNING created_at, updated_at`,
		doc.ID, doc.ReferenceNumber, doc.Status,
		doc.ProjectName, doc.Province, doc.Regency, doc.Address,
		doc.ClientName, doc.ClientPhone, doc.ClientEmail,
		doc.ProjectCategory, doc.ProjectDescription, doc.EstimatedDelivery,
		doc.ComputeWalls, doc.Perimeter, doc.WallHeight, doc.WallPanelID,
		doc.ComputeFloor, segments, doc.FloorPanelID, doc.DestinationKey,
		snapshot,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

// UpdateFields は入力項目を更新する。ステータスが expected のままで、かつ
// approved でない場合にだけ書き込む（compare-and-swap）
func (r *PgDocumentRepository) UpdateFields(ctx context.Context, doc *model.Document, expected model.Status) error {
	segments, err := encodeSegments(doc.Segments)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`UPDATE documents SET
			project_name=$3, province=$4, regency=$5, address=$6,
			client_name=$7, client_phone=$8, client_email=$9,
			project_category=$10, project_description=$11, estimated_delivery=$12,
			compute_walls=$13, perimeter=$14, wall_height=$15, wall_panel_id=$16,
			compute_floor=$17, segments=$18, floor_panel_id=$19, destination_key=$20,
			updated_at=NOW()
		 WHERE id=$1 AND status=$2 AND status <> 'approved' AND deleted_at IS NULL
		 RETURNING updated_at`,
		doc.ID, expected,
		doc.ProjectName, doc.Province, doc.Regency, doc.Address,
		doc.ClientName, doc.ClientPhone, doc.ClientEmail,
		doc.ProjectCategory, doc.ProjectDescription, doc.EstimatedDelivery,
		doc.ComputeWalls, doc.Perimeter, doc.WallHeight, doc.WallPanelID,
		doc.ComputeFloor, segments, doc.FloorPanelID, doc.DestinationKey,
	).Scan(&doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.missOrConflict(ctx, doc.ID)
	}
	return err
}

// UpdateStatus はステータスとスナップショットを 1 回の条件付き UPDATE で書き換える
func (r *PgDocumentRepository) UpdateStatus(ctx context.Context, id string, from, to model.Status, snapshot *model.Snapshot) error {
	snap, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET status=$3, snapshot=$4, updated_at=NOW()
		 WHERE id=$1 AND status=$2 AND deleted_at IS NULL`,
		id, from, to, snap,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// SoftDelete は deleted_at をセットする。approved の見積書は削除しない
func (r *PgDocumentRepository) SoftDelete(ctx context.Context, id string, expected model.Status, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET deleted_at=$3, updated_at=NOW()
		 WHERE id=$1 AND status=$2 AND status <> 'approved' AND deleted_at IS NULL`,
		id, expected, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// missOrConflict tells a vanished row from one whose status moved underneath us.
func (r *PgDocumentRepository) missOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE id=$1 AND deleted_at IS NULL)`, id,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrConflict
	}
	return ErrNotFound
}
