package capacity

import (
	"fmt"
	"math"
)

// Input describes one bolt of a shear connection.
type Input struct {
	BoltDiameterMM float64 `json:"bolt_diameter_mm"`
	FubMPa         float64 `json:"fub_mpa"`
	GammaM         float64 `json:"gamma_m"`
	ShearPlanes    int     `json:"shear_planes"`
}

type Result struct {
	AreaMM2         float64 `json:"area_mm2"`
	ShearCapacityKN float64 `json:"shear_capacity_kn"`
	Notes           string  `json:"notes"`
}

// Calculate returns the ultimate shear capacity of a single bolt,
// 0.6·Fub·A/γM per shear plane on the gross area.
func Calculate(in Input) (Result, error) {
	if !(in.BoltDiameterMM > 0) || !(in.FubMPa > 0) || math.IsInf(in.BoltDiameterMM, 0) || math.IsInf(in.FubMPa, 0) {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.GammaM <= 0 {
		in.GammaM = 1.25
	}
	if in.ShearPlanes <= 0 {
		in.ShearPlanes = 1
	}
	area := math.Pi * in.BoltDiameterMM * in.BoltDiameterMM / 4.0 // mm2
	vrd := float64(in.ShearPlanes) * 0.6 * in.FubMPa * area / in.GammaM / 1000.0
	return Result{
		AreaMM2:         area,
		ShearCapacityKN: vrd,
		Notes:           "Gross-area bolt shear capacity; bearing and tear-out not checked.",
	}, nil
}
