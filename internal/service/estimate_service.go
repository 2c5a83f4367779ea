package service

import (
	"context"

	"github.com/leora/backend/internal/estimate"
	"github.com/leora/backend/internal/model"
)

// EstimateService computes live estimates for the editing UI.
type EstimateService interface {
	Preview(ctx context.Context, in model.EstimateInput) (model.EstimateResult, error)
}

// EstimateServiceImpl は EstimateService の実装
type EstimateServiceImpl struct {
	master MasterDataService
	engine *estimate.Engine
}

// NewEstimateService は EstimateServiceImpl を生成する
func NewEstimateService(master MasterDataService, engine *estimate.Engine) EstimateService {
	return &EstimateServiceImpl{master: master, engine: engine}
}

// Preview validates in and prices it against current master data.
func (s *EstimateServiceImpl) Preview(ctx context.Context, in model.EstimateInput) (model.EstimateResult, error) {
	if err := Validate(in); err != nil {
		return model.EstimateResult{}, err
	}
	md, err := s.master.Load(ctx)
	if err != nil {
		return model.EstimateResult{}, err
	}
	return s.engine.Estimate(in, md), nil
}
