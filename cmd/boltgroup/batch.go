package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"Boltcalc/internal/calc/batch"
	"Boltcalc/internal/calc/boltgroup"
	"Boltcalc/internal/calc/importer"

	"github.com/spf13/cobra"
)

var (
	batchMethod   string
	batchCapacity float64
	batchWorkers  int
	batchTol      float64
	batchMaxIter  int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every load case of a workbook",
	Long: `Read an .xlsx workbook with a "bolts" sheet (id, x, y, diameter) and a
"loads" sheet (name, x, y, z, px, py, pz) and analyze every load case.

Examples:
  boltgroup batch -f cases.xlsx --capacity 44.2`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchMethod, "method", "", "direct, elastic or plastic (default plastic)")
	batchCmd.Flags().Float64Var(&batchCapacity, "capacity", 0, "ultimate shear capacity of one bolt")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "parallel cases (default GOMAXPROCS)")
	batchCmd.Flags().Float64Var(&batchTol, "tolerance", 0, "IC residual tolerance (default 0.01)")
	batchCmd.Flags().IntVar(&batchMaxIter, "max-iterations", 0, "IC iteration cap (default 50)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	in, err := importer.Parse(f)
	if err != nil {
		return err
	}
	in.Method = boltgroup.Method(batchMethod)
	in.BoltCapacity = batchCapacity
	in.Tolerance = batchTol
	in.MaxIterations = batchMaxIter

	res, err := batch.Calculate(cmd.Context(), in, batchWorkers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "case\tmethod\tmax R\tutilization\tstatus")
	for _, cr := range res.Results {
		if cr.Result == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%s\n", cr.Name, cr.Error)
			continue
		}
		status := "OK"
		if !cr.Result.OK {
			status = "NOT OK"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.3f\t%s\n",
			cr.Name, cr.Result.Method, cr.Result.MaxResultant, cr.Result.Utilization, status)
	}
	tw.Flush()
	fmt.Fprintf(out, "\nGoverning case: %s (%d failed)\n", res.Governing, res.Failed)
	return nil
}
