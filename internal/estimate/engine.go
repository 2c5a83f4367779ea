// Package estimate turns a project's geometry and panel selections into an
// itemized cost breakdown. Estimate is pure: it performs no I/O and reads
// only its arguments.
package estimate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leora/backend/internal/model"
)

// Engine prices estimate inputs against master data.
type Engine struct {
	cfg Config
}

// New creates an Engine. Zero-valued config fields take their defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Joints == "" {
		cfg.Joints = def.Joints
	}
	if cfg.Shipping == "" {
		cfg.Shipping = def.Shipping
	}
	return &Engine{cfg: cfg}
}

// Config returns the formula choices of the engine.
func (e *Engine) Config() Config {
	return e.cfg
}

// blockCost is the priced outcome of one block.
type blockCost struct {
	items    []model.LineItem
	subtotal int64
	sheets   int64
	panel    *model.Panel
}

// Estimate computes the cost breakdown. It never fails: missing panels,
// unknown destinations and zero areas contribute nothing.
func (e *Engine) Estimate(in model.EstimateInput, md MasterData) model.EstimateResult {
	n := normalize(in, md)

	walls := e.priceBlock(n.walls, n)
	floor := e.priceBlock(n.floor, n)
	shipItems, shipping := e.priceShipping(n, walls, floor)

	items := make([]model.LineItem, 0, len(walls.items)+len(floor.items)+len(shipItems))
	items = append(items, walls.items...)
	items = append(items, floor.items...)
	items = append(items, shipItems...)

	return model.EstimateResult{
		WallArea:      n.walls.area.InexactFloat64(),
		FloorArea:     n.floor.area.InexactFloat64(),
		WallSubtotal:  walls.subtotal,
		FloorSubtotal: floor.subtotal,
		ShippingCost:  shipping,
		GrandTotal:    sum(walls.subtotal, floor.subtotal, shipping),
		Items:         items,
	}
}

func (e *Engine) priceBlock(b block, n normalized) blockCost {
	if !b.priceable() {
		return blockCost{}
	}
	p := b.panel

	sheets := SheetCount(b.area, finite(p.Coverage()), n.waste)
	panelCost := decimal.NewFromInt(sheets).Mul(decimal.NewFromInt(p.UnitPrice))
	laborCost := b.area.Mul(decimal.NewFromInt(n.laborRate)).Round(0)

	var joints decimal.Decimal
	switch e.cfg.Joints {
	case JointsPerArea:
		joints = b.area.Mul(b.jointFactor).Round(0)
	default:
		joints = decimal.NewFromInt(sheets).Mul(decimal.NewFromInt(jointsPerSheet))
	}
	jointCost := joints.Mul(decimal.NewFromInt(n.jointUnitPrice))

	area := b.area.InexactFloat64()
	return blockCost{
		items: []model.LineItem{
			{
				Desc:      fmt.Sprintf("Panel %s %s", b.label, p.Name),
				Qty:       float64(sheets),
				Unit:      model.UnitSheet,
				UnitPrice: p.UnitPrice,
				Amount:    clampInt(panelCost),
			},
			{
				Desc:      fmt.Sprintf("Jasa pemasangan %s", b.label),
				Qty:       area,
				Unit:      model.UnitArea,
				UnitPrice: n.laborRate,
				Amount:    clampInt(laborCost),
			},
			{
				Desc:      fmt.Sprintf("Joint & angkur %s", b.label),
				Qty:       joints.InexactFloat64(),
				Unit:      model.UnitPoint,
				UnitPrice: n.jointUnitPrice,
				Amount:    clampInt(jointCost),
			},
		},
		subtotal: clampInt(panelCost.Add(laborCost).Add(jointCost)),
		sheets:   sheets,
		panel:    p,
	}
}

func (e *Engine) priceShipping(n normalized, blocks ...blockCost) ([]model.LineItem, int64) {
	if n.rate == nil {
		return nil, 0
	}
	dest := model.DestinationLabel(n.rate.DestinationKey)

	if e.cfg.Shipping == ShippingPerTruck {
		var trucks int64
		for _, b := range blocks {
			trucks = sum(trucks, TruckCount(b.sheets, b.panel))
		}
		if trucks == 0 {
			return nil, 0
		}
		amount := clampInt(decimal.NewFromInt(trucks).Mul(decimal.NewFromInt(n.rate.Cost)))
		return []model.LineItem{{
			Desc:      fmt.Sprintf("Ongkos kirim ke %s", dest),
			Qty:       float64(trucks),
			Unit:      model.UnitTruck,
			UnitPrice: n.rate.Cost,
			Amount:    amount,
		}}, amount
	}

	return []model.LineItem{{
		Desc:      fmt.Sprintf("Ongkos kirim ke %s", dest),
		Qty:       1,
		Unit:      model.UnitLumpSum,
		UnitPrice: n.rate.Cost,
		Amount:    n.rate.Cost,
	}}, n.rate.Cost
}

// SheetCount returns ceil((area / coverage) × waste), saturated to int64. The waste factor is
// applied to the quotient, and the quotient is rounded to quantityPlaces
// before the ceiling.
func SheetCount(area, coverage, waste decimal.Decimal) int64 {
	if coverage.IsZero() {
		return 0
	}
	return clampInt(area.Div(coverage).Mul(waste).Round(quantityPlaces).Ceil())
}

// sum adds amounts, saturating at the int64 range.
func sum(amounts ...int64) int64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromInt(a))
	}
	return clampInt(total)
}

// TruckCount returns ceil(sheets / unitsPerTruck). A panel without a truck
// capacity ships in a single truck.
func TruckCount(sheets int64, p *model.Panel) int64 {
	if sheets <= 0 || p == nil {
		return 0
	}
	if p.UnitsPerTruck == nil || *p.UnitsPerTruck <= 0 {
		return 1
	}
	per := int64(*p.UnitsPerTruck)
	trucks := sheets / per
	if sheets%per != 0 {
		trucks++
	}
	return trucks
}
