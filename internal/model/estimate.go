package model

// Segment (bidang) is one rectangular floor area.
type Segment struct {
	Length float64 `json:"length" validate:"gte=0,lte=10000"`
	Width  float64 `json:"width" validate:"gte=0,lte=10000"`
}

// Area returns length × width.
func (s Segment) Area() float64 {
	return s.Length * s.Width
}

// EstimateInput holds the geometric and selection inputs of one estimate.
// Dimensions are metres; the upper bounds keep every amount well inside int64.
type EstimateInput struct {
	ComputeWalls   bool      `json:"computeWalls"`
	Perimeter      float64   `json:"perimeter" validate:"gte=0,lte=100000"`
	WallHeight     float64   `json:"wallHeight" validate:"gte=0,lte=1000"`
	WallPanelID    string    `json:"wallPanelId,omitempty"`
	ComputeFloor   bool      `json:"computeFloor"`
	Segments       []Segment `json:"segments" validate:"max=500,dive"`
	FloorPanelID   string    `json:"floorPanelId,omitempty"`
	DestinationKey string    `json:"destinationKey"`
}

// Clone returns a copy that shares no slices with in.
func (in EstimateInput) Clone() EstimateInput {
	out := in
	if in.Segments != nil {
		out.Segments = make([]Segment, len(in.Segments))
		copy(out.Segments, in.Segments)
	}
	return out
}

// Line item units.
const (
	UnitSheet   = "lembar"
	UnitArea    = "m²"
	UnitPoint   = "titik"
	UnitLumpSum = "unit"
	UnitTruck   = "truk"
)

// LineItem is one row of a cost breakdown.
type LineItem struct {
	Desc      string  `json:"desc"`
	Qty       float64 `json:"qty"`
	Unit      string  `json:"unit"`
	UnitPrice int64   `json:"unitPrice"`
	Amount    int64   `json:"amount"`
}

// EstimateResult is the itemized cost breakdown produced by the engine.
type EstimateResult struct {
	WallArea      float64    `json:"wallArea"`
	FloorArea     float64    `json:"floorArea"`
	WallSubtotal  int64      `json:"wallSubtotal"`
	FloorSubtotal int64      `json:"floorSubtotal"`
	ShippingCost  int64      `json:"shippingCost"`
	GrandTotal    int64      `json:"grandTotal"`
	Items         []LineItem `json:"items"`
}

// NonZeroItems returns the items worth displaying (amount != 0).
func (r EstimateResult) NonZeroItems() []LineItem {
	items := make([]LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Amount != 0 {
			items = append(items, it)
		}
	}
	return items
}
