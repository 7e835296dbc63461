package main

import (
	"fmt"
	"os"

	"Boltcalc/internal/calc/report"

	"github.com/spf13/cobra"
)

var (
	reportOut     string
	reportProject string
	reportAuthor  string
	reportTitle   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF calculation report for one load case",
	Long: `Examples:
  boltgroup report -f case.json -o out.pdf --project "Bay 3 splice"`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "report.pdf", "output PDF")
	reportCmd.Flags().StringVar(&reportProject, "project", "", "project name")
	reportCmd.Flags().StringVar(&reportAuthor, "author", "", "author")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
}

func runReport(cmd *cobra.Command, args []string) error {
	req, err := readRequest(inputFile)
	if err != nil {
		return err
	}
	in := report.Input{
		Project: reportProject,
		Author:  reportAuthor,
		Title:   reportTitle,
		Case:    req,
	}
	res, err := report.Evaluate(cmd.Context(), in)
	if err != nil {
		return err
	}

	f, err := os.Create(reportOut)
	if err != nil {
		return err
	}
	if err := report.Write(f, in, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", reportOut)
	return nil
}
