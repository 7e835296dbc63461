package boltgroup

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"Boltcalc/internal/calc/capacity"
	"Boltcalc/internal/calc/loads"
	"Boltcalc/internal/logging"

	"go.uber.org/zap"
)

// Request is the API payload: an Input whose force may come from a load
// combination and whose bolt capacity may come from material data.
//
// Material data is the one place with fixed units: the capacity it yields is
// in kN, and a missing BoltDiameterMM is taken from Bolts[0].Diameter as
// millimetres. Use it only when the case is in kN and mm; otherwise give
// BoltCapacity directly.
type Request struct {
	Input
	Combination *loads.Input    `json:"combination,omitempty"`
	Material    *capacity.Input `json:"material,omitempty"`
}

// Prepare folds the combination and material data into a plain Input.
func (req Request) Prepare() (Input, error) {
	in := req.Input
	if req.Combination != nil {
		combo, err := loads.Calculate(*req.Combination)
		if err != nil {
			return Input{}, inputError("combination", fmt.Errorf("%w: %v", ErrInvalidInput, err))
		}
		in.Load.Force = combo.Design
	}
	if req.Material != nil && in.BoltCapacity == 0 {
		m := *req.Material
		if m.BoltDiameterMM == 0 && len(in.Bolts) > 0 {
			m.BoltDiameterMM = in.Bolts[0].Diameter
		}
		c, err := capacity.Calculate(m)
		if err != nil {
			return Input{}, inputError("material", fmt.Errorf("%w: %v", ErrInvalidInput, err))
		}
		in.BoltCapacity = c.ShearCapacityKN
	}
	return in, nil
}

type Handler struct {
	Log *zap.Logger
	// Defaults fills Tolerance and MaxIterations left empty by the request.
	Defaults Options
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in, err := req.Prepare()
	if err != nil {
		WriteError(w, err)
		return
	}
	in = h.withDefaults(in)

	ctx := r.Context()
	if h.Log != nil {
		ctx = logging.WithLogger(ctx, h.Log)
	}
	res, err := CalculateContext(ctx, in)
	if err != nil {
		logging.FromContext(ctx).Info("bolt group calculation failed",
			zap.String("method", string(in.Method)),
			zap.Int("bolts", len(in.Bolts)),
			zap.Error(err))
		WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) withDefaults(in Input) Input {
	if in.Tolerance == 0 {
		in.Tolerance = h.Defaults.Tolerance
	}
	if in.MaxIterations == 0 {
		in.MaxIterations = h.Defaults.MaxIterations
	}
	return in
}

// StatusCode maps a calculation error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNumericalHazard), errors.Is(err, ErrNoConvergence):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON body with the status from StatusCode.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(err))
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
