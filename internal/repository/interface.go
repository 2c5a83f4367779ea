package repository

import (
	"context"
	"time"

	"github.com/leora/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// PanelRepository はパネルマスタの永続化インターフェース
type PanelRepository interface {
	List(ctx context.Context) ([]*model.Panel, error)
	GetByID(ctx context.Context, id string) (*model.Panel, error)
	Create(ctx context.Context, panel *model.Panel) error
	Update(ctx context.Context, panel *model.Panel) error
	Delete(ctx context.Context, id string) error
}

// ShippingRateRepository は配送料金表の永続化インターフェース
type ShippingRateRepository interface {
	List(ctx context.Context) ([]*model.ShippingRate, error)
	Upsert(ctx context.Context, rate *model.ShippingRate) error
	Delete(ctx context.Context, destinationKey string) error
}

// ParameterRepository は見積係数（単一行）の永続化インターフェース
type ParameterRepository interface {
	// Get returns the saved parameters, or model.DefaultParameters when none are saved.
	Get(ctx context.Context) (*model.Parameters, error)
	Save(ctx context.Context, params *model.Parameters) error
}

// DocumentRepository は見積書 (RAB) の永続化インターフェース
type DocumentRepository interface {
	// List returns documents that are not soft-deleted, newest first.
	List(ctx context.Context, limit, offset int) ([]*model.Document, error)
	// GetByID excludes soft-deleted documents.
	GetByID(ctx context.Context, id string) (*model.Document, error)
	GetByIDIncludingDeleted(ctx context.Context, id string) (*model.Document, error)
	// CountAll counts every document, soft-deleted ones included.
	CountAll(ctx context.Context) (int, error)
	Create(ctx context.Context, doc *model.Document) error
	// UpdateFields writes doc's inputs only if its status is still expected.
	UpdateFields(ctx context.Context, doc *model.Document, expected model.Status) error
	// UpdateStatus moves the document from one status to another and replaces
	// its snapshot in a single conditional write.
	UpdateStatus(ctx context.Context, id string, from, to model.Status, snapshot *model.Snapshot) error
	// SoftDelete marks the document deleted if its status is still expected.
	SoftDelete(ctx context.Context, id string, expected model.Status, at time.Time) error
}
