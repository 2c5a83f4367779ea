package handler

import (
	"context"

	"github.com/leora/backend/internal/estimate"
	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock DocumentService
// ---------------------------------------------------------------------------

type mockDocumentService struct {
	listFunc        func(ctx context.Context, limit, offset int) ([]*model.Document, error)
	getFunc         func(ctx context.Context, id string) (*model.Document, error)
	getForAuditFunc func(ctx context.Context, id string) (*model.Document, error)
	viewFunc        func(ctx context.Context, id string) (*service.DocumentView, error)
	createFunc      func(ctx context.Context, in model.DocumentInput) (*model.Document, error)
	updateFunc      func(ctx context.Context, id string, in model.DocumentInput) (*model.Document, error)
	transitionFunc  func(ctx context.Context, id string, to model.Status, confirmed bool) (*model.Document, error)
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockDocumentService) List(ctx context.Context, limit, offset int) ([]*model.Document, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}
func (m *mockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockDocumentService) GetForAudit(ctx context.Context, id string) (*model.Document, error) {
	if m.getForAuditFunc != nil {
		return m.getForAuditFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockDocumentService) View(ctx context.Context, id string) (*service.DocumentView, error) {
	if m.viewFunc != nil {
		return m.viewFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockDocumentService) Create(ctx context.Context, in model.DocumentInput) (*model.Document, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return nil, nil
}
func (m *mockDocumentService) Update(ctx context.Context, id string, in model.DocumentInput) (*model.Document, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return nil, nil
}
func (m *mockDocumentService) Transition(ctx context.Context, id string, to model.Status, confirmed bool) (*model.Document, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, to, confirmed)
	}
	return nil, nil
}
func (m *mockDocumentService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock MasterDataService
// ---------------------------------------------------------------------------

type mockMasterDataService struct {
	loadFunc               func(ctx context.Context) (estimate.MasterData, error)
	listPanelsFunc         func(ctx context.Context) ([]*model.Panel, error)
	createPanelFunc        func(ctx context.Context, panel *model.Panel) error
	updatePanelFunc        func(ctx context.Context, panel *model.Panel) error
	deletePanelFunc        func(ctx context.Context, id string) error
	listShippingRatesFunc  func(ctx context.Context) ([]*model.ShippingRate, error)
	saveShippingRateFunc   func(ctx context.Context, rate *model.ShippingRate) error
	deleteShippingRateFunc func(ctx context.Context, destinationKey string) error
	getParametersFunc      func(ctx context.Context) (*model.Parameters, error)
	saveParametersFunc     func(ctx context.Context, params *model.Parameters) error
}

func (m *mockMasterDataService) Load(ctx context.Context) (estimate.MasterData, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return estimate.MasterData{}, nil
}
func (m *mockMasterDataService) ListPanels(ctx context.Context) ([]*model.Panel, error) {
	if m.listPanelsFunc != nil {
		return m.listPanelsFunc(ctx)
	}
	return nil, nil
}
func (m *mockMasterDataService) CreatePanel(ctx context.Context, panel *model.Panel) error {
	if m.createPanelFunc != nil {
		return m.createPanelFunc(ctx, panel)
	}
	return nil
}
func (m *mockMasterDataService) UpdatePanel(ctx context.Context, panel *model.Panel) error {
	if m.updatePanelFunc != nil {
		return m.updatePanelFunc(ctx, panel)
	}
	return nil
}
func (m *mockMasterDataService) DeletePanel(ctx context.Context, id string) error {
	if m.deletePanelFunc != nil {
		return m.deletePanelFunc(ctx, id)
	}
	return nil
}
func (m *mockMasterDataService) ListShippingRates(ctx context.Context) ([]*model.ShippingRate, error) {
	if m.listShippingRatesFunc != nil {
		return m.listShippingRatesFunc(ctx)
	}
	return nil, nil
}
func (m *mockMasterDataService) SaveShippingRate(ctx context.Context, rate *model.ShippingRate) error {
	if m.saveShippingRateFunc != nil {
		return m.saveShippingRateFunc(ctx, rate)
	}
	return nil
}
func (m *mockMasterDataService) DeleteShippingRate(ctx context.Context, destinationKey string) error {
	if m.deleteShippingRateFunc != nil {
		return m.deleteShippingRateFunc(ctx, destinationKey)
	}
	return nil
}
func (m *mockMasterDataService) GetParameters(ctx context.Context) (*model.Parameters, error) {
	if m.getParametersFunc != nil {
		return m.getParametersFunc(ctx)
	}
	p := model.DefaultParameters()
	return &p, nil
}
func (m *mockMasterDataService) SaveParameters(ctx context.Context, params *model.Parameters) error {
	if m.saveParametersFunc != nil {
		return m.saveParametersFunc(ctx, params)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock EstimateService
// ---------------------------------------------------------------------------

type mockEstimateService struct {
	previewFunc func(ctx context.Context, in model.EstimateInput) (model.EstimateResult, error)
}

func (m *mockEstimateService) Preview(ctx context.Context, in model.EstimateInput) (model.EstimateResult, error) {
	if m.previewFunc != nil {
		return m.previewFunc(ctx, in)
	}
	return model.EstimateResult{}, nil
}
