package batch

import (
	"encoding/json"
	"net/http"

	"Boltcalc/internal/logging"

	"go.uber.org/zap"
)

type Handler struct {
	Log     *zap.Logger
	Workers int
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if h.Log != nil {
		ctx = logging.WithLogger(ctx, h.Log)
	}
	res, err := Calculate(ctx, input, h.Workers)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
