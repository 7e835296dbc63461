package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"Boltcalc/internal/calc/boltgroup"

	"github.com/spf13/cobra"
)

var (
	analyzeMethod   string
	analyzeCapacity float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one load case",
	Long: `Read a JSON case (bolts, load and optional combination or material data)
and print the force in every bolt.

Examples:
  boltgroup analyze -f case.json
  boltgroup analyze -f case.json --method elastic --capacity 44.2`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeMethod, "method", "", "direct, elastic or plastic (overrides the file)")
	analyzeCmd.Flags().Float64Var(&analyzeCapacity, "capacity", 0, "ultimate shear capacity of one bolt (overrides the file)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := readRequest(inputFile)
	if err != nil {
		return err
	}
	if analyzeMethod != "" {
		req.Method = boltgroup.Method(analyzeMethod)
	}
	if analyzeCapacity > 0 {
		req.BoltCapacity = analyzeCapacity
	}
	in, err := req.Prepare()
	if err != nil {
		return err
	}
	res, err := boltgroup.CalculateContext(cmd.Context(), in)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(out io.Writer, res boltgroup.Result) {
	l := res.Load
	fmt.Fprintf(out, "Method:        %s\n", res.Method)
	fmt.Fprintf(out, "Bolts:         %d\n", len(res.Bolts))
	fmt.Fprintf(out, "Centroid:      (%.4g, %.4g)\n", res.Centroid.X, res.Centroid.Y)
	fmt.Fprintf(out, "Ixx, Iyy, J:   %.4g, %.4g, %.4g\n", res.Properties.Ixx, res.Properties.Iyy, res.Properties.J)
	fmt.Fprintf(out, "Moment Mz:     %.4g\n", l.Moment.Z)
	fmt.Fprintf(out, "Angle:         %.2f deg\n", l.Angle*180/math.Pi)
	fmt.Fprintf(out, "Eccentricity:  %.4g\n", l.Eccentricity)
	if s := res.Solution; s != nil {
		fmt.Fprintf(out, "IC:            (%.4g, %.4g) after %d iterations\n", s.IC.X, s.IC.Y, s.Iterations)
		fmt.Fprintf(out, "Residual:      %.3g\n", s.Residual)
		fmt.Fprintf(out, "ce, cu:        %.4g, %.4g\n", s.Ce, s.Cu)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "id\tx\ty\tFx\tFy\tR\t")
	for _, b := range res.Bolts {
		fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%.4f\t%.4f\t%.4f\t\n",
			b.ID, b.Position.X, b.Position.Y, b.Total.X, b.Total.Y, b.Resultant)
	}
	tw.Flush()
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Max resultant: %.4f\n", res.MaxResultant)
	if res.GroupCapacity > 0 {
		fmt.Fprintf(out, "Group capacity: %.4f\n", res.GroupCapacity)
	}
	status := "OK"
	if !res.OK {
		status = "NOT OK"
	}
	fmt.Fprintf(out, "Utilization:   %.3f %s\n", res.Utilization, status)
	fmt.Fprintln(out, res.Notes)
}
