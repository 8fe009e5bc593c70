// SPDX-License-Identifier: MIT

// Command factorcalc runs sparse factor algebra over YAML factor documents.
//
//	factorcalc multiply prior.yaml slip_given_rain.yaml
//	factorcalc marginalize joint.yaml --vars slip
//	factorcalc reduce joint.yaml --observe slip=1 | factorcalc normalize -
//
// Every command prints its result as a table, or as a YAML document with
// -o yaml so that results can be piped into the next command. A divide whose
// default cell is 0/0 has no YAML form; cancel maps 0/0 to 0 and always has.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvfactor/categorical"
)

// app holds the global flags and the logger shared by every subcommand.
type app struct {
	verbose        bool
	workers        int
	maxEnumeration int
	output         string

	logger *zap.Logger
}

// newRootCmd wires the command tree. A nil logger is built from the flags
// before any subcommand runs.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}
	root := &cobra.Command{
		Use:   "factorcalc",
		Short: "Sparse discrete factor algebra over YAML documents",
		Long: `factorcalc loads sparse categorical factors from YAML documents and
applies one algebra operation: product, quotient, marginal, reduction,
normalization, KL divergence or argmax.

A path of "-" reads standard input. A file may hold several documents
separated by "---"; every document is one operand.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.workers < 1 {
				return fmt.Errorf("--workers must be >= 1, got %d", a.workers)
			}
			if a.maxEnumeration < 0 {
				return fmt.Errorf("--max-enumeration must be >= 0, got %d", a.maxEnumeration)
			}
			if a.output != outputTable && a.output != outputYAML {
				return fmt.Errorf("--output must be %q or %q, got %q", outputTable, outputYAML, a.output)
			}
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log engine decisions at debug level")
	pf.IntVar(&a.workers, "workers", categorical.DefaultWorkers, "goroutines for the binary engine")
	pf.IntVar(&a.maxEnumeration, "max-enumeration", categorical.DefaultMaxEnumeration,
		"cap on cells an exhaustive operation may enumerate (0 = unlimited)")
	pf.StringVarP(&a.output, "output", "o", outputTable, "result format: table or yaml")

	root.AddCommand(
		a.multiplyCmd(),
		a.binaryCmd("divide", "Divide the first factor by the second (0/0 = NaN)", (*categorical.SparseCategorical).Divide),
		a.binaryCmd("cancel", "Divide the first factor by the second (0/0 = 0)", (*categorical.SparseCategorical).Cancel),
		a.marginalizeCmd(),
		a.reduceCmd(),
		a.normalizeCmd(),
		a.klCmd(),
		a.vacuousCmd(),
		a.argmaxCmd(),
		a.showCmd(),
		a.templateCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
