package estimate

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/leora/backend/internal/model"
)

// quantityPlaces is the precision a sheet quotient is rounded to before the
// ceiling, so that 44.0000000000000001 still means 44 sheets.
const quantityPlaces = 9

// block is one priced surface (walls or floor) with every optional input resolved.
type block struct {
	label       string
	active      bool
	area        decimal.Decimal
	panel       *model.Panel
	jointFactor decimal.Decimal
}

// priceable reports whether the block produces line items at all.
func (b block) priceable() bool {
	return b.active && b.panel != nil && b.area.IsPositive()
}

type normalized struct {
	walls          block
	floor          block
	waste          decimal.Decimal
	laborRate      int64
	jointUnitPrice int64
	destination    string
	rate           *model.ShippingRate
}

// normalize resolves absent and defaulted inputs once, before any arithmetic.
func normalize(in model.EstimateInput, md MasterData) normalized {
	params := md.Parameters()

	waste := finite(params.WasteFactor)
	if waste.IsZero() {
		waste = decimal.NewFromInt(1)
	}

	wallArea := finite(in.Perimeter).Mul(finite(in.WallHeight))
	floorArea := decimal.Zero
	for _, s := range in.Segments {
		floorArea = floorArea.Add(finite(s.Length).Mul(finite(s.Width)))
	}

	n := normalized{
		walls: block{
			label:       "dinding",
			active:      in.ComputeWalls,
			area:        wallArea,
			panel:       lookupPanel(md, in.WallPanelID),
			jointFactor: finite(params.JointFactorWall),
		},
		floor: block{
			label:       "lantai",
			active:      in.ComputeFloor,
			area:        floorArea,
			panel:       lookupPanel(md, in.FloorPanelID),
			jointFactor: finite(params.JointFactorFloor),
		},
		waste:          waste,
		laborRate:      params.LaborRate,
		jointUnitPrice: params.JointUnitPrice,
		destination:    in.DestinationKey,
	}
	if r, ok := md.Rate(in.DestinationKey); ok {
		n.rate = &r
	}
	return n
}

func lookupPanel(md MasterData, id string) *model.Panel {
	p, ok := md.Panel(id)
	if !ok {
		return nil
	}
	return &p
}

// finite converts f, mapping NaN and ±Inf to zero.
func finite(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// clampInt returns the integer part of d, saturated to the int64 range.
func clampInt(d decimal.Decimal) int64 {
	switch {
	case d.GreaterThan(maxAmount):
		return math.MaxInt64
	case d.LessThan(minAmount):
		return math.MinInt64
	}
	return d.IntPart()
}
