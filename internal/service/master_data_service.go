package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leora/backend/internal/estimate"
	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/repository"
)

// MasterDataService はパネル・配送料金・見積係数のマスタを扱う
type MasterDataService interface {
	// Load reads panels, shipping rates and parameters into one immutable
	// snapshot for the estimation engine.
	Load(ctx context.Context) (estimate.MasterData, error)

	ListPanels(ctx context.Context) ([]*model.Panel, error)
	CreatePanel(ctx context.Context, panel *model.Panel) error
	UpdatePanel(ctx context.Context, panel *model.Panel) error
	DeletePanel(ctx context.Context, id string) error

	ListShippingRates(ctx context.Context) ([]*model.ShippingRate, error)
	SaveShippingRate(ctx context.Context, rate *model.ShippingRate) error
	DeleteShippingRate(ctx context.Context, destinationKey string) error

	GetParameters(ctx context.Context) (*model.Parameters, error)
	SaveParameters(ctx context.Context, params *model.Parameters) error
}

// MasterDataServiceImpl は MasterDataService の実装
type MasterDataServiceImpl struct {
	panels repository.PanelRepository
	rates  repository.ShippingRateRepository
	params repository.ParameterRepository
}

// NewMasterDataService は MasterDataServiceImpl を生成する
func NewMasterDataService(panels repository.PanelRepository, rates repository.ShippingRateRepository, params repository.ParameterRepository) MasterDataService {
	return &MasterDataServiceImpl{panels: panels, rates: rates, params: params}
}

// Load は 3 種のマスタを並行して読み込む
func (s *MasterDataServiceImpl) Load(ctx context.Context) (estimate.MasterData, error) {
	var (
		panels []*model.Panel
		rates  []*model.ShippingRate
		params *model.Parameters
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		panels, err = s.panels.List(gctx)
		if err != nil {
			return fmt.Errorf("load panels: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rates, err = s.rates.List(gctx)
		if err != nil {
			return fmt.Errorf("load shipping rates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		params, err = s.params.Get(gctx)
		if err != nil {
			return fmt.Errorf("load parameters: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return estimate.MasterData{}, err
	}

	p := make([]model.Panel, 0, len(panels))
	for _, panel := range panels {
		p = append(p, *panel)
	}
	r := make([]model.ShippingRate, 0, len(rates))
	for _, rate := range rates {
		r = append(r, *rate)
	}
	if params == nil {
		def := model.DefaultParameters()
		params = &def
	}
	return estimate.NewMasterData(p, r, *params), nil
}

// ListPanels はパネル一覧を返す
func (s *MasterDataServiceImpl) ListPanels(ctx context.Context) ([]*model.Panel, error) {
	return s.panels.List(ctx)
}

// CreatePanel は ID を採番してパネルを登録する
func (s *MasterDataServiceImpl) CreatePanel(ctx context.Context, panel *model.Panel) error {
	if panel.AreaPerUnit == 0 {
		panel.AreaPerUnit = model.DefaultAreaPerUnit
	}
	if err := Validate(panel); err != nil {
		return err
	}
	panel.ID = uuid.NewString()
	return s.panels.Create(ctx, panel)
}

// UpdatePanel はパネルを更新する
func (s *MasterDataServiceImpl) UpdatePanel(ctx context.Context, panel *model.Panel) error {
	if panel.AreaPerUnit == 0 {
		panel.AreaPerUnit = model.DefaultAreaPerUnit
	}
	if err := Validate(panel); err != nil {
		return err
	}
	return s.panels.Update(ctx, panel)
}

// DeletePanel はパネルを削除する。参照している見積書はそのまま残る
func (s *MasterDataServiceImpl) DeletePanel(ctx context.Context, id string) error {
	return s.panels.Delete(ctx, id)
}

// ListShippingRates は配送料金一覧を返す
func (s *MasterDataServiceImpl) ListShippingRates(ctx context.Context) ([]*model.ShippingRate, error) {
	return s.rates.List(ctx)
}

// SaveShippingRate は仕向け地の料金を登録または上書きする
func (s *MasterDataServiceImpl) SaveShippingRate(ctx context.Context, rate *model.ShippingRate) error {
	rate.DestinationKey = model.CanonicalDestination(rate.DestinationKey)
	if err := Validate(rate); err != nil {
		return err
	}
	return s.rates.Upsert(ctx, rate)
}

// DeleteShippingRate は仕向け地の料金を削除する
func (s *MasterDataServiceImpl) DeleteShippingRate(ctx context.Context, destinationKey string) error {
	return s.rates.Delete(ctx, model.CanonicalDestination(destinationKey))
}

// GetParameters は見積係数を返す
func (s *MasterDataServiceImpl) GetParameters(ctx context.Context) (*model.Parameters, error) {
	return s.params.Get(ctx)
}

// SaveParameters は見積係数を保存する
func (s *MasterDataServiceImpl) SaveParameters(ctx context.Context, params *model.Parameters) error {
	if err := Validate(params); err != nil {
		return err
	}
	return s.params.Save(ctx, params)
}
