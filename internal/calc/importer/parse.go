package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Boltcalc/internal/calc/batch"
	"Boltcalc/internal/calc/boltgroup"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	BoltsSheet = "bolts"
	LoadsSheet = "loads"
)

var (
	boltsHeader = []interface{}{"id", "x", "y", "diameter"}
	loadsHeader = []interface{}{"name", "x", "y", "z", "px", "py", "pz"}
)

// Parse reads a workbook with a bolts sheet (id, x, y, diameter) and a loads
// sheet (name, x, y, z, px, py, pz), each with a header row. Blank rows are
// skipped; a malformed number fails the import with its sheet and row.
func Parse(r io.Reader) (batch.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return batch.Input{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	boltRows, err := f.GetRows(BoltsSheet)
	if err != nil {
		return batch.Input{}, fmt.Errorf("read %s sheet: %w", BoltsSheet, err)
	}
	loadRows, err := f.GetRows(LoadsSheet)
	if err != nil {
		return batch.Input{}, fmt.Errorf("read %s sheet: %w", LoadsSheet, err)
	}

	var in batch.Input
	for i := 1; i < len(boltRows); i++ {
		row := boltRows[i]
		if blank(row) {
			continue
		}
		b, err := parseBoltRow(row)
		if err != nil {
			return batch.Input{}, fmt.Errorf("%s row %d: %w", BoltsSheet, i+1, err)
		}
		if b.ID == "" {
			b.ID = strconv.Itoa(len(in.Bolts) + 1)
		}
		in.Bolts = append(in.Bolts, b)
	}
	for i := 1; i < len(loadRows); i++ {
		row := loadRows[i]
		if blank(row) {
			continue
		}
		c, err := parseLoadRow(row)
		if err != nil {
			return batch.Input{}, fmt.Errorf("%s row %d: %w", LoadsSheet, i+1, err)
		}
		in.Cases = append(in.Cases, c)
	}
	if len(in.Bolts) == 0 {
		return batch.Input{}, fmt.Errorf("%s sheet has no bolts", BoltsSheet)
	}
	if len(in.Cases) == 0 {
		return batch.Input{}, fmt.Errorf("%s sheet has no load cases", LoadsSheet)
	}
	return in, nil
}

func parseBoltRow(row []string) (boltgroup.Bolt, error) {
	// expected: id, x, y, diameter(optional)
	if len(row) < 3 {
		return boltgroup.Bolt{}, fmt.Errorf("bad row")
	}
	x, err := toFloat(row[1])
	if err != nil {
		return boltgroup.Bolt{}, err
	}
	y, err := toFloat(row[2])
	if err != nil {
		return boltgroup.Bolt{}, err
	}
	d := 0.0
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		if d, err = toFloat(row[3]); err != nil {
			return boltgroup.Bolt{}, err
		}
	}
	return boltgroup.Bolt{
		ID:       strings.TrimSpace(row[0]),
		Position: r2.Vec{X: x, Y: y},
		Diameter: d,
	}, nil
}

func parseLoadRow(row []string) (batch.Case, error) {
	// expected: name, x, y, z, px, py, pz; trailing empty cells read as zero
	var v [6]float64
	for k := range v {
		col := k + 1
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		f, err := toFloat(row[col])
		if err != nil {
			return batch.Case{}, err
		}
		v[k] = f
	}
	name := ""
	if len(row) > 0 {
		name = strings.TrimSpace(row[0])
	}
	return batch.Case{
		Name: name,
		Load: boltgroup.Load{
			Point: r3.Vec{X: v[0], Y: v[1], Z: v[2]},
			Force: r3.Vec{X: v[3], Y: v[4], Z: v[5]},
		},
	}, nil
}

// Template returns an empty workbook with both sheets and their headers.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", BoltsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(LoadsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(BoltsSheet, "A1", &boltsHeader); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(LoadsSheet, "A1", &loadsHeader); err != nil {
		return nil, err
	}
	return f, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
