package model

import "time"

// Parameters are the global coefficients used by the estimation engine.
type Parameters struct {
	WasteFactor      float64   `json:"wasteFactor" validate:"gte=1"`
	JointFactorWall  float64   `json:"jointFactorWall" validate:"gte=0"`
	JointFactorFloor float64   `json:"jointFactorFloor" validate:"gte=0"`
	LaborRate        int64     `json:"laborRate" validate:"gte=0"`
	JointUnitPrice   int64     `json:"jointUnitPrice" validate:"gte=0"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultParameters returns the coefficients used until an administrator saves others.
func DefaultParameters() Parameters {
	return Parameters{
		WasteFactor:      1.1,
		JointFactorWall:  2.5,
		JointFactorFloor: 2.5,
		LaborRate:        200000,
		JointUnitPrice:   2300,
	}
}
