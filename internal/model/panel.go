package model

import "time"

// DefaultAreaPerUnit is the coverage of one sheet (m²) when a panel does not specify it.
const DefaultAreaPerUnit = 1.8

// Panel types.
const (
	PanelTypeWall  = "wall"
	PanelTypeFloor = "floor"
)

// Panel is a purchasable panel SKU from the master data catalog.
type Panel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Type          string    `json:"type" validate:"oneof=wall floor"`
	UnitPrice     int64     `json:"unitPrice" validate:"gte=0"`
	AreaPerUnit   float64   `json:"areaPerUnit" validate:"gte=0"`
	UnitsPerTruck *int      `json:"unitsPerTruck,omitempty" validate:"omitempty,gt=0"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Coverage returns the area covered by one sheet, falling back to DefaultAreaPerUnit.
func (p *Panel) Coverage() float64 {
	if p.AreaPerUnit <= 0 {
		return DefaultAreaPerUnit
	}
	return p.AreaPerUnit
}
