package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leora/backend/internal/estimate"
	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/repository"
)

// ReferenceGenerator issues human-readable reference numbers for new documents.
type ReferenceGenerator interface {
	Generate(ctx context.Context) string
}

// DocumentView is a document together with the totals to display for it.
type DocumentView struct {
	Document *model.Document      `json:"document"`
	Estimate model.EstimateResult `json:"estimate"`
	// Frozen is true when Estimate comes from the price-locked snapshot.
	Frozen bool `json:"frozen"`
}

// DocumentService は見積書 (RAB) のライフサイクルを管理する
type DocumentService interface {
	List(ctx context.Context, limit, offset int) ([]*model.Document, error)
	Get(ctx context.Context, id string) (*model.Document, error)
	// GetForAudit returns the document even when it is soft-deleted.
	GetForAudit(ctx context.Context, id string) (*model.Document, error)
	View(ctx context.Context, id string) (*DocumentView, error)
	Create(ctx context.Context, in model.DocumentInput) (*model.Document, error)
	Update(ctx context.Context, id string, in model.DocumentInput) (*model.Document, error)
	Transition(ctx context.Context, id string, to model.Status, confirmed bool) (*model.Document, error)
	Delete(ctx context.Context, id string) error
}

// DocumentServiceImpl は DocumentService の実装
type DocumentServiceImpl struct {
	docs   repository.DocumentRepository
	master MasterDataService
	engine *estimate.Engine
	refs   ReferenceGenerator
	now    func() time.Time
}

// NewDocumentService は DocumentServiceImpl を生成する
func NewDocumentService(docs repository.DocumentRepository, master MasterDataService, engine *estimate.Engine, refs ReferenceGenerator) DocumentService {
	return &DocumentServiceImpl{
		docs:   docs,
		master: master,
		engine: engine,
		refs:   refs,
		now:    time.Now,
	}
}

// List は削除されていない見積書の一覧を返す
func (s *DocumentServiceImpl) List(ctx context.Context, limit, offset int) ([]*model.Document, error) {
	return s.docs.List(ctx, limit, offset)
}

// Get は削除されていない見積書を返す
func (s *DocumentServiceImpl) Get(ctx context.Context, id string) (*model.Document, error) {
	return s.docs.GetByID(ctx, id)
}

// GetForAudit は削除済みを含めて見積書を返す
func (s *DocumentServiceImpl) GetForAudit(ctx context.Context, id string) (*model.Document, error) {
	return s.docs.GetByIDIncludingDeleted(ctx, id)
}

// View returns the document with its displayed totals: the snapshot for a
// price-locked document, a fresh computation otherwise.
func (s *DocumentServiceImpl) View(ctx context.Context, id string) (*DocumentView, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, doc)
}

func (s *DocumentServiceImpl) render(ctx context.Context, doc *model.Document) (*DocumentView, error) {
	switch p := doc.Pricing().(type) {
	case model.FrozenPricing:
		return &DocumentView{Document: doc, Estimate: p.Snapshot.EstimateResult, Frozen: true}, nil
	case model.LivePricing:
		md, err := s.master.Load(ctx)
		if err != nil {
			return nil, err
		}
		return &DocumentView{Document: doc, Estimate: s.engine.Estimate(p.Input, md)}, nil
	default:
		return nil, fmt.Errorf("unknown pricing %T", p)
	}
}

// Create は draft の見積書を作成する
func (s *DocumentServiceImpl) Create(ctx context.Context, in model.DocumentInput) (*model.Document, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	doc := &model.Document{
		ID:              uuid.NewString(),
		ReferenceNumber: s.refs.Generate(ctx),
		Status:          model.StatusDraft,
	}
	doc.Apply(in)
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// Update replaces the document's inputs. Approved documents are immutable.
// A sent document keeps its snapshot until it is sent again.
func (s *DocumentServiceImpl) Update(ctx context.Context, id string, in model.DocumentInput) (*model.Document, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status.Locked() {
		return nil, fmt.Errorf("%w: document %s is approved and can no longer be edited", ErrForbidden, doc.ReferenceNumber)
	}
	doc.Apply(in)
	if err := s.docs.UpdateFields(ctx, doc, doc.Status); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

// Transition moves the document to status to.
//
//   - into sent: the current estimate is frozen into the snapshot;
//   - into approved: requires confirmed; freezes when no snapshot exists yet;
//   - into draft: the snapshot is cleared and pricing becomes live again;
//   - approved is terminal.
//
// The status write is conditional on the status read, so concurrent
// transitions cannot both succeed.
func (s *DocumentServiceImpl) Transition(ctx context.Context, id string, to model.Status, confirmed bool) (*model.Document, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status.Locked() {
		return nil, fmt.Errorf("%w: document %s is approved; its status can no longer change", ErrForbidden, doc.ReferenceNumber)
	}
	if doc.Status == to {
		return doc, nil
	}
	if to == model.StatusApproved && !confirmed {
		return nil, ErrConfirmationRequired
	}

	var snapshot *model.Snapshot
	switch to {
	case model.StatusSent:
		if snapshot, err = s.freeze(ctx, doc); err != nil {
			return nil, err
		}
	case model.StatusApproved:
		snapshot = doc.Snapshot
		if doc.Status != model.StatusSent || snapshot == nil {
			if snapshot, err = s.freeze(ctx, doc); err != nil {
				return nil, err
			}
		}
	case model.StatusDraft:
		snapshot = nil
	}

	if err := s.docs.UpdateStatus(ctx, doc.ID, doc.Status, to, snapshot); err != nil {
		return nil, fmt.Errorf("update document status: %w", err)
	}
	doc.Status = to
	doc.Snapshot = snapshot
	return doc, nil
}

// freeze prices the document against current master data and copies the
// inputs and result into a new snapshot.
func (s *DocumentServiceImpl) freeze(ctx context.Context, doc *model.Document) (*model.Snapshot, error) {
	md, err := s.master.Load(ctx)
	if err != nil {
		return nil, err
	}
	res := s.engine.Estimate(doc.EstimateInput, md)
	return model.NewSnapshot(doc, res, s.now()), nil
}

// Delete soft-deletes the document. Approved documents cannot be deleted.
func (s *DocumentServiceImpl) Delete(ctx context.Context, id string) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.Status.Locked() {
		return fmt.Errorf("%w: document %s is approved and cannot be deleted", ErrForbidden, doc.ReferenceNumber)
	}
	if err := s.docs.SoftDelete(ctx, doc.ID, doc.Status, s.now()); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
