// Command boltgroup runs bolt-group shear analyses from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"Boltcalc/internal/calc/boltgroup"
	"Boltcalc/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inputFile string
	verbose   bool
	log       *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "boltgroup",
	Short:         "Bolt group load distribution",
	Long:          `Distribute an in-plane load over a bolt pattern by direct shear, elastic eccentric shear or the instantaneous center method.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level)
		if err != nil {
			return err
		}
		log = l
		cmd.SetContext(logging.WithLogger(cmd.Context(), l))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input file [required]")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver iterations")
	rootCmd.MarkPersistentFlagRequired("file")
}

// readRequest decodes a bolt-group case from a JSON file.
func readRequest(path string) (boltgroup.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return boltgroup.Request{}, err
	}
	defer f.Close()
	var req boltgroup.Request
	if err := json.NewDecoder(f).Decode(&req); err != nil {
		return boltgroup.Request{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
