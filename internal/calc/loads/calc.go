package loads

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Method string

const (
	MethodSP24 Method = "SP24"
	MethodSP22 Method = "SP22"
	MethodEC7  Method = "EC7"
)

// Input holds the characteristic force vectors of one load case.
type Input struct {
	Method        Method `json:"method"`
	Permanent     r3.Vec `json:"permanent"`
	VariableLong  r3.Vec `json:"variable_long"`
	VariableShort r3.Vec `json:"variable_short"`
}

type Result struct {
	Design    r3.Vec `json:"design"`
	ComboName string `json:"combo_name"`
	Notes     string `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	for _, v := range []r3.Vec{in.Permanent, in.VariableLong, in.VariableShort} {
		if !finite(v) {
			return Result{}, fmt.Errorf("invalid load component")
		}
	}
	if in.Permanent == (r3.Vec{}) && in.VariableLong == (r3.Vec{}) && in.VariableShort == (r3.Vec{}) {
		return Result{}, fmt.Errorf("empty load combination")
	}
	gG, gQlong, gQshort, name, err := factors(in.Method)
	if err != nil {
		return Result{}, err
	}
	design := r3.Add(r3.Scale(gG, in.Permanent),
		r3.Add(r3.Scale(gQlong, in.VariableLong), r3.Scale(gQshort, in.VariableShort)))
	return Result{
		Design:    design,
		ComboName: name,
		Notes:     "Basic combination of one permanent and two variable force vectors.",
	}, nil
}

func factors(method Method) (gG, gQlong, gQshort float64, name string, err error) {
	switch method {
	case MethodSP22:
		return 1.05, 1.2, 1.3, "SP22 basic", nil
	case MethodEC7:
		return 1.35, 1.5, 1.5, "EC7 STR/GEO", nil
	case MethodSP24, "":
		return 1.1, 1.2, 1.3, "SP24 basic", nil
	default:
		return 0, 0, 0, "", fmt.Errorf("unknown combination method %q", method)
	}
}

func finite(v r3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
