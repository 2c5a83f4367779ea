package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// memDocumentRepo — in-memory DocumentRepository for unit tests
// ---------------------------------------------------------------------------

type memDocumentRepo struct {
	mu        sync.Mutex
	docs      map[string]*model.Document
	order     []string
	createErr error
	countErr  error
	updateErr error
	// beforeStatusWrite runs inside UpdateStatus before the status check,
	// to simulate a concurrent writer.
	beforeStatusWrite func(id string)
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: make(map[string]*model.Document)}
}

func copyDoc(d *model.Document) *model.Document {
	c := *d
	c.EstimateInput = d.EstimateInput.Clone()
	return &c
}

func (r *memDocumentRepo) List(_ context.Context, limit, offset int) ([]*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Document
	for i := len(r.order) - 1; i >= 0; i-- {
		d := r.docs[r.order[i]]
		if d.DeletedAt == nil {
			out = append(out, copyDoc(d))
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	return copyDoc(d), nil
}

func (r *memDocumentRepo) GetByIDIncludingDeleted(_ context.Context, id string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDoc(d), nil
}

func (r *memDocumentRepo) CountAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.docs), nil
}

func (r *memDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	r.docs[doc.ID] = copyDoc(doc)
	r.order = append(r.order, doc.ID)
	return nil
}

// check mirrors the conditional WHERE clause of the PostgreSQL implementation.
func (r *memDocumentRepo) check(id string, expected model.Status) (*model.Document, error) {
	d, ok := r.docs[id]
	if !ok || d.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	if d.Status != expected {
		return nil, repository.ErrConflict
	}
	return d, nil
}

func (r *memDocumentRepo) UpdateFields(_ context.Context, doc *model.Document, expected model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	d, err := r.check(doc.ID, expected)
	if err != nil {
		return err
	}
	if d.Status == model.StatusApproved {
		return repository.ErrConflict
	}
	d.DocumentFields = doc.DocumentFields
	d.EstimateInput = doc.EstimateInput.Clone()
	return nil
}

func (r *memDocumentRepo) UpdateStatus(_ context.Context, id string, from, to model.Status, snapshot *model.Snapshot) error {
	if r.beforeStatusWrite != nil {
		r.beforeStatusWrite(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	d, err := r.check(id, from)
	if err != nil {
		return err
	}
	d.Status = to
	d.Snapshot = snapshot
	return nil
}

func (r *memDocumentRepo) SoftDelete(_ context.Context, id string, expected model.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, err := r.check(id, expected)
	if err != nil {
		return err
	}
	if d.Status == model.StatusApproved {
		return repository.ErrConflict
	}
	d.DeletedAt = &at
	return nil
}

// forceStatus changes a stored document's status behind the service's back.
func (r *memDocumentRepo) forceStatus(id string, st model.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[id].Status = st
}

// ---------------------------------------------------------------------------
// master data mocks
// ---------------------------------------------------------------------------

type memPanelRepo struct {
	mu      sync.Mutex
	panels  map[string]*model.Panel
	listErr error
}

func newMemPanelRepo(panels ...model.Panel) *memPanelRepo {
	r := &memPanelRepo{panels: make(map[string]*model.Panel)}
	for i := range panels {
		p := panels[i]
		r.panels[p.ID] = &p
	}
	return r
}

func (r *memPanelRepo) List(_ context.Context) ([]*model.Panel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*model.Panel, 0, len(r.panels))
	for _, p := range r.panels {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPanelRepo) GetByID(_ context.Context, id string) (*model.Panel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.panels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *memPanelRepo) Create(_ context.Context, panel *model.Panel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *panel
	r.panels[panel.ID] = &c
	return nil
}

func (r *memPanelRepo) Update(_ context.Context, panel *model.Panel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.panels[panel.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *panel
	r.panels[panel.ID] = &c
	return nil
}

func (r *memPanelRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.panels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.panels, id)
	return nil
}

func (r *memPanelRepo) setPrice(id string, price int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels[id].UnitPrice = price
}

type memRateRepo struct {
	mu    sync.Mutex
	rates map[string]int64
}

func newMemRateRepo(rates ...model.ShippingRate) *memRateRepo {
	r := &memRateRepo{rates: make(map[string]int64)}
	for _, sr := range rates {
		r.rates[sr.DestinationKey] = sr.Cost
	}
	return r
}

func (r *memRateRepo) List(_ context.Context) ([]*model.ShippingRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.ShippingRate, 0, len(r.rates))
	for k, v := range r.rates {
		out = append(out, &model.ShippingRate{DestinationKey: k, Cost: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DestinationKey < out[j].DestinationKey })
	return out, nil
}

func (r *memRateRepo) Upsert(_ context.Context, rate *model.ShippingRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[rate.DestinationKey] = rate.Cost
	return nil
}

func (r *memRateRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rates[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rates, key)
	return nil
}

type memParamRepo struct {
	params *model.Parameters
}

func (r *memParamRepo) Get(_ context.Context) (*model.Parameters, error) {
	if r.params == nil {
		def := model.DefaultParameters()
		return &def, nil
	}
	c := *r.params
	return &c, nil
}

func (r *memParamRepo) Save(_ context.Context, params *model.Parameters) error {
	c := *params
	r.params = &c
	return nil
}

// ---------------------------------------------------------------------------
// ReferenceGenerator mock
// ---------------------------------------------------------------------------

type fixedRefs struct {
	ref string
}

func (f fixedRefs) Generate(context.Context) string { return f.ref }
