package estimate

import "github.com/leora/backend/internal/model"

// MasterData is an immutable view of the catalog the engine prices against.
// Build it with NewMasterData; the engine never mutates it, so one value can
// be shared by concurrent callers.
type MasterData struct {
	panels     map[string]model.Panel
	rates      map[string]model.ShippingRate
	parameters model.Parameters
}

// NewMasterData indexes panels by id and shipping rates by destination key.
// Later duplicates win.
func NewMasterData(panels []model.Panel, rates []model.ShippingRate, params model.Parameters) MasterData {
	md := MasterData{
		panels:     make(map[string]model.Panel, len(panels)),
		rates:      make(map[string]model.ShippingRate, len(rates)),
		parameters: params,
	}
	for _, p := range panels {
		md.panels[p.ID] = p
	}
	for _, r := range rates {
		md.rates[r.DestinationKey] = r
	}
	return md
}

// Parameters returns the coefficients in effect.
func (md MasterData) Parameters() model.Parameters {
	return md.parameters
}

// Panel looks up a panel by id.
func (md MasterData) Panel(id string) (model.Panel, bool) {
	if id == "" {
		return model.Panel{}, false
	}
	p, ok := md.panels[id]
	return p, ok
}

// Rate looks up the shipping rate for key, falling back to the province-only
// key when the composite one is absent. Matching is exact and case-sensitive.
func (md MasterData) Rate(key string) (model.ShippingRate, bool) {
	if key == "" {
		return model.ShippingRate{}, false
	}
	if r, ok := md.rates[key]; ok {
		return r, true
	}
	province := model.ProvinceOf(key)
	if province == key {
		return model.ShippingRate{}, false
	}
	r, ok := md.rates[province]
	return r, ok
}

// Catalog counts what a MasterData can price.
type Catalog struct {
	WallPanels    int `json:"wallPanels"`
	FloorPanels   int `json:"floorPanels"`
	ShippingRates int `json:"shippingRates"`
}

// Complete reports whether both panel types and at least one shipping zone exist.
func (c Catalog) Complete() bool {
	return c.WallPanels > 0 && c.FloorPanels > 0 && c.ShippingRates > 0
}

// Catalog returns the panel counts per type and the number of shipping zones.
func (md MasterData) Catalog() Catalog {
	c := Catalog{ShippingRates: len(md.rates)}
	for _, p := range md.panels {
		switch p.Type {
		case model.PanelTypeWall:
			c.WallPanels++
		case model.PanelTypeFloor:
			c.FloorPanels++
		}
	}
	return c
}
