// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvfactor/categorical"
	"github.com/katalvlaran/lvfactor/factor"
	"github.com/katalvlaran/lvfactor/factorfile"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

// binaryOp is a two-operand factor operation such as Divide.
type binaryOp func(f *categorical.SparseCategorical, g factor.Factor) (factor.Factor, error)

// options returns the factor options the global flags select.
func (a *app) options() []categorical.Option {
	return []categorical.Option{
		categorical.WithLogger(a.logger),
		categorical.WithWorkers(a.workers),
		categorical.WithMaxEnumeration(a.maxEnumeration),
	}
}

// loadDocuments reads every document from paths; "-" is standard input.
func (a *app) loadDocuments(cmd *cobra.Command, paths []string) ([]*factorfile.Document, error) {
	var docs []*factorfile.Document
	for _, p := range paths {
		var (
			d   []*factorfile.Document
			err error
		)
		if p == "-" {
			d, err = factorfile.DecodeAll(cmd.InOrStdin())
		} else {
			d, err = factorfile.Load(p)
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, d...)
	}
	a.logger.Debug("documents loaded", zap.Strings("paths", paths), zap.Int("documents", len(docs)))
	return docs, nil
}

// loadFactors reads every document from paths as a factor.
func (a *app) loadFactors(cmd *cobra.Command, paths []string) ([]*categorical.SparseCategorical, error) {
	docs, err := a.loadDocuments(cmd, paths)
	if err != nil {
		return nil, err
	}
	out := make([]*categorical.SparseCategorical, len(docs))
	for i, d := range docs {
		if out[i], err = d.Factor(a.options()...); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	return out, nil
}

// loadExactly reads paths and requires n factors in total.
func (a *app) loadExactly(cmd *cobra.Command, paths []string, n int) ([]*categorical.SparseCategorical, error) {
	fs, err := a.loadFactors(cmd, paths)
	if err != nil {
		return nil, err
	}
	if len(fs) != n {
		return nil, fmt.Errorf("expected %d factors, read %d", n, len(fs))
	}
	return fs, nil
}

// emit prints f in the selected output format.
func (a *app) emit(w io.Writer, f factor.Factor) error {
	sc, ok := f.(*categorical.SparseCategorical)
	if !ok {
		return fmt.Errorf("unexpected result type %T", f)
	}
	if a.output == outputYAML {
		if math.IsNaN(sc.DefaultLogProb()) {
			// factor documents cannot carry an undefined default
			return fmt.Errorf("result has a NaN default (0/0 from divide); use cancel or table output")
		}
		return factorfile.Encode(w, factorfile.FromFactor(sc))
	}
	_, err := fmt.Fprint(w, sc)
	return err
}

func (a *app) multiplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "multiply FILE...",
		Short: "Multiply every factor read from the files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadFactors(cmd, args)
			if err != nil {
				return err
			}
			if len(fs) == 0 {
				return fmt.Errorf("no factors read")
			}
			var acc factor.Factor = fs[0]
			for _, g := range fs[1:] {
				if acc, err = acc.Multiply(g); err != nil {
					return err
				}
			}
			return a.emit(cmd.OutOrStdout(), acc)
		},
	}
}

func (a *app) binaryCmd(use, short string, op binaryOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " FILE...",
		Short: short,
		Long:  short + ". The files must hold exactly two factors in total.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadExactly(cmd, args, 2)
			if err != nil {
				return err
			}
			r, err := op(fs[0], fs[1])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), r)
		},
	}
}

func (a *app) marginalizeCmd() *cobra.Command {
	var (
		vars []string
		sum  bool
	)
	cmd := &cobra.Command{
		Use:   "marginalize FILE",
		Short: "Sum variables out of a factor",
		Long: `Sum variables out of a factor. By default --vars names the variables to
keep; with --sum-out it names the variables to eliminate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadExactly(cmd, args, 1)
			if err != nil {
				return err
			}
			r, err := fs[0].Marginalize(vars, !sum)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringSliceVar(&vars, "vars", nil, "variables to keep (or eliminate with --sum-out)")
	cmd.Flags().BoolVar(&sum, "sum-out", false, "eliminate --vars instead of keeping them")
	return cmd
}

func (a *app) reduceCmd() *cobra.Command {
	var observe map[string]int
	cmd := &cobra.Command{
		Use:   "reduce FILE",
		Short: "Condition a factor on observed values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(observe) == 0 {
				return fmt.Errorf("--observe is required")
			}
			fs, err := a.loadExactly(cmd, args, 1)
			if err != nil {
				return err
			}
			vars := make([]string, 0, len(observe))
			for v := range observe {
				vars = append(vars, v)
			}
			slices.Sort(vars)
			values := make(factor.Assignment, len(vars))
			for i, v := range vars {
				values[i] = observe[v]
			}
			r, err := fs[0].Reduce(vars, values)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringToIntVar(&observe, "observe", nil, "observed values, e.g. slip=1,rain=0")
	return cmd
}

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Scale a factor to total probability one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadExactly(cmd, args, 1)
			if err != nil {
				return err
			}
			r, err := fs[0].Normalize()
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), r)
		},
	}
}

func (a *app) klCmd() *cobra.Command {
	var normalizeQ bool
	cmd := &cobra.Command{
		Use:   "kl FILE...",
		Short: "KL divergence D(P || Q) of the first factor from the second",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadExactly(cmd, args, 2)
			if err != nil {
				return err
			}
			kld, err := fs[0].KLDivergence(fs[1], normalizeQ)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", kld)
			return err
		},
	}
	cmd.Flags().BoolVar(&normalizeQ, "normalize-q", false, "normalize Q before comparing")
	return cmd
}

func (a *app) vacuousCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vacuous FILE",
		Short: "KL divergence of a factor from the uniform factor over its scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadExactly(cmd, args, 1)
			if err != nil {
				return err
			}
			d, err := fs[0].DistanceFromVacuous()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", d)
			return err
		},
	}
}

func (a *app) argmaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "argmax FILE",
		Short: "Most probable explicit assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadExactly(cmd, args, 1)
			if err != nil {
				return err
			}
			best, err := fs[0].Argmax()
			if err != nil {
				return err
			}
			names := fs[0].VarNames()
			parts := make([]string, len(best))
			for i, s := range best {
				parts[i] = fmt.Sprintf("%s=%d", names[i], s)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return err
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE...",
		Short: "Print every factor read from the files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := a.loadFactors(cmd, args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, f := range fs {
				if i > 0 && a.output == outputYAML {
					fmt.Fprintln(w, "---")
				} else if i > 0 {
					fmt.Fprintln(w)
				}
				if err = a.emit(w, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) templateCmd() *cobra.Command {
	var (
		set   map[string]string
		names []string
	)
	cmd := &cobra.Command{
		Use:   "template FILE",
		Short: "Instantiate a template document",
		Long: `Instantiate a template document, either by filling its {key}
placeholders with --set or by naming the variables with --names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := a.loadDocuments(cmd, args)
			if err != nil {
				return err
			}
			if len(docs) != 1 {
				return fmt.Errorf("expected 1 template, read %d", len(docs))
			}
			tpl, err := docs[0].Template(a.options()...)
			if err != nil {
				return err
			}
			var f factor.Factor
			if len(names) > 0 {
				f, err = tpl.MakeFactorWithNames(names)
			} else {
				f, err = tpl.MakeFactor(set)
			}
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringToStringVar(&set, "set", nil, "placeholder values, e.g. t=3,next=4")
	cmd.Flags().StringSliceVar(&names, "names", nil, "concrete variable names")
	return cmd
}
