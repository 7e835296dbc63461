package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Boltcalc/internal/calc/boltgroup"
	"Boltcalc/internal/logging"

	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if h.Log != nil {
		ctx = logging.WithLogger(ctx, h.Log)
	}
	res, err := Evaluate(ctx, input)
	if err != nil {
		boltgroup.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := Write(&buf, input, res); err != nil {
		logging.FromContext(ctx).Error("report generation failed", zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
