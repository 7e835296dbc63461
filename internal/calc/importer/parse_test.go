package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"Boltcalc/internal/calc/batch"
	"Boltcalc/internal/calc/boltgroup"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func workbook(t *testing.T, bolts, loads [][]interface{}) *bytes.Buffer {
	t.Helper()
	f, err := Template()
	require.NoError(t, err)
	defer f.Close()
	for i, row := range bolts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(BoltsSheet, cell, &row))
	}
	for i, row := range loads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(LoadsSheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func columnRows() ([][]interface{}, [][]interface{}) {
	bolts := [][]interface{}{
		{"A", 0, 0, 20},
		{"B", 0, 3, 20},
		{"", 0, 6},
	}
	loads := [][]interface{}{
		{"ULS1", 4, 0, 0, 0, -1, 0},
		{"ULS2", 0, 3, 0, 0.5, -1},
	}
	return bolts, loads
}

func columnWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	bolts, loads := columnRows()
	return workbook(t, bolts, loads)
}

func TestParse(t *testing.T) {
	in, err := Parse(columnWorkbook(t))
	require.NoError(t, err)

	want := []boltgroup.Bolt{
		{ID: "A", Position: r2.Vec{X: 0, Y: 0}, Diameter: 20},
		{ID: "B", Position: r2.Vec{X: 0, Y: 3}, Diameter: 20},
		{ID: "3", Position: r2.Vec{X: 0, Y: 6}},
	}
	if diff := cmp.Diff(want, in.Bolts); diff != "" {
		t.Errorf("bolts mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, in.Cases, 2)
	assert.Equal(t, batch.Case{
		Name: "ULS1",
		Load: boltgroup.Load{Point: r3.Vec{X: 4}, Force: r3.Vec{Y: -1}},
	}, in.Cases[0])
	assert.Equal(t, r3.Vec{X: 0.5, Y: -1}, in.Cases[1].Load.Force)
}

func TestParseSkipsBlankRows(t *testing.T) {
	bolts, loads := columnRows()
	loads = append([][]interface{}{{"", "", ""}}, loads...)
	in, err := Parse(workbook(t, bolts, loads))
	require.NoError(t, err)
	assert.Len(t, in.Cases, 2)
}

func TestParseErrors(t *testing.T) {
	bolts, loads := columnRows()

	badLoad := append(loads[:1:1], []interface{}{"ULS2", 0, "three", 0, 0, -1})
	_, err := Parse(workbook(t, bolts, badLoad))
	assert.ErrorContains(t, err, "loads row 3: invalid number")

	badBolt := [][]interface{}{{"A", 0}}
	_, err = Parse(workbook(t, badBolt, loads))
	assert.ErrorContains(t, err, "bolts row 2")

	_, err = Parse(workbook(t, nil, loads))
	assert.ErrorContains(t, err, "no bolts")

	_, err = Parse(workbook(t, bolts, nil))
	assert.ErrorContains(t, err, "no load cases")

	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	_, err = Parse(buf)
	assert.ErrorContains(t, err, "bolts sheet")

	_, err = Parse(bytes.NewBufferString("not a workbook"))
	assert.ErrorContains(t, err, "open workbook")
}

func upload(t *testing.T, file *bytes.Buffer, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "cases.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(file.Bytes())
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/boltgroup/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlerBoltGroup(t *testing.T) {
	h := &Handler{Workers: 2}
	rec := httptest.NewRecorder()
	h.BoltGroup(rec, upload(t, columnWorkbook(t), map[string]string{
		"method":        "plastic",
		"bolt_capacity": "10",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res batch.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Results, 2)
	assert.Equal(t, "ULS1", res.Results[0].Name)
	assert.InDelta(t, 0.0714254, res.Results[0].Result.Utilization, 1e-6)
	assert.Equal(t, 0, res.Failed)
}

func TestHandlerBoltGroupErrors(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.BoltGroup(rec, upload(t, nil, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.BoltGroup(rec, upload(t, columnWorkbook(t), map[string]string{"bolt_capacity": "ten"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bolt_capacity")
}

func TestHandlerTemplate(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).Template(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(LoadsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"name", "x", "y", "z", "px", "py", "pz"}, rows[0])
}
