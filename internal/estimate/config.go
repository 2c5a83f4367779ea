package estimate

import "fmt"

// JointFormula selects how fastener (joint/anchor) points are counted.
type JointFormula string

const (
	// JointsPerSheet counts five points per sheet.
	JointsPerSheet JointFormula = "per_sheet"
	// JointsPerArea counts round(area × joint factor) points.
	JointsPerArea JointFormula = "per_area"
)

// jointsPerSheet is the number of fastener points per sheet under JointsPerSheet.
const jointsPerSheet = 5

// ShippingMode selects how the shipping cost is derived.
type ShippingMode string

const (
	// ShippingFlat charges the destination's flat rate once.
	ShippingFlat ShippingMode = "flat"
	// ShippingPerTruck charges the destination's rate per truck needed.
	ShippingPerTruck ShippingMode = "per_truck"
)

// Config fixes the deployment-wide formula choices.
type Config struct {
	Joints   JointFormula `json:"joints"`
	Shipping ShippingMode `json:"shipping"`
}

// DefaultConfig is the per-sheet joint count with flat-rate shipping.
func DefaultConfig() Config {
	return Config{Joints: JointsPerSheet, Shipping: ShippingFlat}
}

// ParseJointFormula parses a JOINT_FORMULA value. Empty means JointsPerSheet.
func ParseJointFormula(s string) (JointFormula, error) {
	switch JointFormula(s) {
	case "", JointsPerSheet:
		return JointsPerSheet, nil
	case JointsPerArea:
		return JointsPerArea, nil
	}
	return "", fmt.Errorf("estimate: unknown joint formula %q (want %q or %q)", s, JointsPerSheet, JointsPerArea)
}

// ParseShippingMode parses a SHIPPING_MODE value. Empty means ShippingFlat.
func ParseShippingMode(s string) (ShippingMode, error) {
	switch ShippingMode(s) {
	case "", ShippingFlat:
		return ShippingFlat, nil
	case ShippingPerTruck:
		return ShippingPerTruck, nil
	}
	return "", fmt.Errorf("estimate: unknown shipping mode %q (want %q or %q)", s, ShippingFlat, ShippingPerTruck)
}
