package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"Boltcalc/internal/calc/boltgroup"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string            `json:"project"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Notes   string            `json:"notes"`
	Case    boltgroup.Request `json:"case"`
}

// Evaluate runs the bolt-group calculation the report describes.
func Evaluate(ctx context.Context, in Input) (boltgroup.Result, error) {
	bg, err := in.Case.Prepare()
	if err != nil {
		return boltgroup.Result{}, err
	}
	return boltgroup.CalculateContext(ctx, bg)
}

// Render calculates the case in in and writes it as a PDF report.
func Render(w io.Writer, in Input) error {
	res, err := Evaluate(context.Background(), in)
	if err != nil {
		return err
	}
	return Write(w, in, res)
}

// Write lays out an already computed result.
func Write(w io.Writer, in Input, res boltgroup.Result) error {
	if in.Title == "" {
		in.Title = "Bolt Group Calculation"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title, false)
	pdf.SetAuthor(in.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Bolt group")
	line(pdf, "Bolts", fmt.Sprintf("%d", len(res.Bolts)))
	line(pdf, "Centroid", fmt.Sprintf("(%.4g, %.4g)", res.Centroid.X, res.Centroid.Y))
	line(pdf, "Ixx / Iyy / J", fmt.Sprintf("%.4g / %.4g / %.4g", res.Properties.Ixx, res.Properties.Iyy, res.Properties.J))

	section(pdf, "Load")
	l := res.Load
	line(pdf, "Point", fmt.Sprintf("(%.4g, %.4g, %.4g)", l.Point.X, l.Point.Y, l.Point.Z))
	line(pdf, "Force", fmt.Sprintf("(%.4g, %.4g, %.4g)", l.Force.X, l.Force.Y, l.Force.Z))
	line(pdf, "Moment at centroid", fmt.Sprintf("(%.4g, %.4g, %.4g)", l.Moment.X, l.Moment.Y, l.Moment.Z))
	line(pdf, "Line of action", fmt.Sprintf("%.2f deg", l.Angle*180/math.Pi))
	line(pdf, "Eccentricity", fmt.Sprintf("%.4g", l.Eccentricity))
	line(pdf, "Method", string(res.Method))

	if s := res.Solution; s != nil {
		section(pdf, "Instantaneous center")
		line(pdf, "IC (from centroid)", fmt.Sprintf("(%.4g, %.4g)", s.IC.X, s.IC.Y))
		line(pdf, "Iterations", fmt.Sprintf("%d", s.Iterations))
		line(pdf, "Residual", fmt.Sprintf("%.3g", s.Residual))
		line(pdf, "Sum R/Rult d", fmt.Sprintf("%.4g", s.MomentSum))
		line(pdf, "ce / cu", fmt.Sprintf("%.4g / %.4g", s.Ce, s.Cu))
		if res.GroupCapacity > 0 {
			line(pdf, "Group capacity", fmt.Sprintf("%.4g", res.GroupCapacity))
		}
	}

	section(pdf, "Bolt forces")
	boltTable(pdf, res)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	verdict := "OK"
	if !res.OK {
		verdict = "NOT OK"
	}
	line(pdf, "Max resultant", fmt.Sprintf("%.4g", res.MaxResultant))
	line(pdf, "Utilization", fmt.Sprintf("%.3f (%s)", res.Utilization, verdict))
	pdf.Ln(2)
	pdf.MultiCell(0, 6, res.Notes, "", "L", false)
	if in.Notes != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 5, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, value, "", 1, "L", false, 0, "")
}

func boltTable(pdf *gofpdf.Fpdf, res boltgroup.Result) {
	plastic := res.Solution != nil
	head := []string{"ID", "x", "y", "Fx", "Fy", "R"}
	widths := []float64{20, 25, 25, 30, 30, 30}
	if plastic {
		head = append(head, "d", "R/Rult")
		widths = []float64{16, 20, 20, 26, 26, 26, 22, 22}
	}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range head {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, b := range res.Bolts {
		cells := []string{
			b.ID,
			fmt.Sprintf("%.4g", b.Position.X),
			fmt.Sprintf("%.4g", b.Position.Y),
			fmt.Sprintf("%.4g", b.Total.X),
			fmt.Sprintf("%.4g", b.Total.Y),
			fmt.Sprintf("%.4g", b.Resultant),
		}
		if plastic {
			cells = append(cells, fmt.Sprintf("%.4g", b.Distance), fmt.Sprintf("%.3f", b.Fraction))
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 5, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
