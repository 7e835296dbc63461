package importer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Boltcalc/internal/calc/batch"
	"Boltcalc/internal/calc/boltgroup"
	"Boltcalc/internal/logging"

	"go.uber.org/zap"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Log     *zap.Logger
	Workers int
}

// BoltGroup runs every load case of an uploaded workbook. The optional form
// fields method, bolt_capacity, tolerance and max_iterations apply to all
// cases.
func (h *Handler) BoltGroup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	in, err := Parse(file)
	if err != nil {
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}
	in.Method = boltgroup.Method(r.FormValue("method"))
	if in.BoltCapacity, err = formFloat(r, "bolt_capacity"); err != nil {
		http.Error(w, "Invalid bolt_capacity", http.StatusBadRequest)
		return
	}
	if in.Tolerance, err = formFloat(r, "tolerance"); err != nil {
		http.Error(w, "Invalid tolerance", http.StatusBadRequest)
		return
	}
	if v := r.FormValue("max_iterations"); v != "" {
		if in.MaxIterations, err = strconv.Atoi(v); err != nil {
			http.Error(w, "Invalid max_iterations", http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	if h.Log != nil {
		ctx = logging.WithLogger(ctx, h.Log)
	}
	res, err := batch.Calculate(ctx, in, h.Workers)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Template serves the empty import workbook.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	f, err := Template()
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"boltgroup.xlsx\"")
	if err := f.Write(w); err != nil {
		logging.FromContext(r.Context()).Error("write template", zap.Error(err))
	}
}

func formFloat(r *http.Request, key string) (float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}
