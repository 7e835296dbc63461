package boltgroup

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Boltcalc/internal/calc/capacity"
	"Boltcalc/internal/calc/loads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

const columnJSON = `{
	"bolts": [
		{"id": "B1", "position": {"x": 0, "y": 0}, "diameter": 20},
		{"id": "B2", "position": {"x": 0, "y": 3}, "diameter": 20},
		{"id": "B3", "position": {"x": 0, "y": 6}, "diameter": 20}
	],
	"load": {"point": {"x": 4}, "force": {"y": -1}}
	%s
}`

func post(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/boltgroup/calc", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)
	return rec
}

func columnBody(extra string) string {
	return strings.Replace(columnJSON, "%s", extra, 1)
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{Log: zap.NewNop(), Defaults: DefaultOptions()}
	rec := post(t, h, columnBody(`, "bolt_capacity": 10`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, MethodPlastic, res.Method)
	require.NotNil(t, res.Solution)
	assert.Equal(t, 4, res.Solution.Iterations)
	assert.Equal(t, "B2", res.Bolts[1].ID)
	assert.InDelta(t, 14.00063, res.GroupCapacity, 1e-4)
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		defaults Options
		body     string
		code     int
	}{
		{"bad json", DefaultOptions(), `{"bolts": [`, http.StatusBadRequest},
		{"unsupported method", DefaultOptions(), columnBody(`, "method": "neutral_axis"`), http.StatusBadRequest},
		{"no bolts", DefaultOptions(), `{"load": {"point": {"x": 1}, "force": {"y": 1}}}`, http.StatusBadRequest},
		{"no convergence", Options{MaxIterations: 2}, columnBody(""), http.StatusUnprocessableEntity},
		{"bad combination", DefaultOptions(), columnBody(`, "combination": {"method": "SP99", "permanent": {"y": -1}}`), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, &Handler{Defaults: tt.defaults}, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestHandlerErrorBody(t *testing.T) {
	rec := post(t, &Handler{}, columnBody(`, "method": "tension"`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "unsupported analysis method")
}

func TestRequestPrepare(t *testing.T) {
	bolts, l := column()
	for i := range bolts {
		bolts[i].Diameter = 20
	}
	req := Request{
		Input:       Input{Bolts: bolts, Load: l},
		Combination: &loads.Input{Method: loads.MethodSP24, Permanent: r3.Vec{Y: -1}},
		Material:    &capacity.Input{FubMPa: 400},
	}
	in, err := req.Prepare()
	require.NoError(t, err)

	assert.InDelta(t, -1.1, in.Load.Force.Y, 1e-12)
	assert.InDelta(t, 0.6*400*math.Pi*100/1.25/1000, in.BoltCapacity, 1e-9)
	assert.Equal(t, l.Point, in.Load.Point)
}

func TestRequestPrepareKeepsCapacity(t *testing.T) {
	bolts, l := column()
	req := Request{
		Input:    Input{Bolts: bolts, Load: l, BoltCapacity: 7},
		Material: &capacity.Input{BoltDiameterMM: 16, FubMPa: 800},
	}
	in, err := req.Prepare()
	require.NoError(t, err)
	assert.Equal(t, 7.0, in.BoltCapacity)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(inputError("x", ErrNonFinite)))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(&NumericalHazardError{}))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(&ConvergenceError{}))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
