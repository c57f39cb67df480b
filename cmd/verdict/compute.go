package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Verdict/internal/matrix"
	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

type computeOptions struct {
	output          string
	rankPolicy      string
	weightTolerance float64
	precision       int32
}

func newComputeCommand() *cobra.Command {
	opts := computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute <matrix-file>",
		Short: "Rank the alternatives in a matrix file",
		Long: `Rank the alternatives in a YAML or JSON matrix file.

Use "-" to read the matrix from stdin. The command exits with status 1 when
the matrix is rejected (no criteria, no alternatives, or a missing score)
and 2 on any other error. Advisory diagnostics are printed to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringVar(&opts.rankPolicy, "rank-policy", string(saw.RankSequential), "Tie ranking: sequential or competition")
	cmd.Flags().Float64Var(&opts.weightTolerance, "weight-tolerance", saw.DefaultWeightTolerance, "Allowed drift of the weight sum from 1.0")
	cmd.Flags().Int32Var(&opts.precision, "precision", 4, "Decimal places in table output")

	return cmd
}

func runCompute(cmd *cobra.Command, path string, opts computeOptions) error {
	policy, err := saw.ParseRankPolicy(opts.rankPolicy)
	if err != nil {
		return err
	}
	if !(opts.weightTolerance > 0) {
		return fmt.Errorf("--weight-tolerance must be positive, got %v", opts.weightTolerance)
	}
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", opts.output)
	}

	doc, err := loadMatrix(cmd, path)
	if err != nil {
		return err
	}
	criteria, alternatives, err := doc.Build()
	if err != nil {
		return fmt.Errorf("invalid matrix: %w", err)
	}

	ev, err := saw.Compute(criteria, alternatives,
		saw.WithRankPolicy(policy),
		saw.WithWeightTolerance(opts.weightTolerance),
	)
	if err != nil {
		return &RejectedError{Err: err}
	}

	for _, d := range ev.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d.Message) //nolint:errcheck
	}

	if opts.output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	}
	return writeTable(cmd.OutOrStdout(), criteria, ev, opts.precision)
}

func loadMatrix(cmd *cobra.Command, path string) (*matrix.Document, error) {
	if path == "-" {
		return matrix.Decode(cmd.InOrStdin())
	}
	return matrix.Load(path)
}

// writeTable prints one row per ranked alternative with its preference
// score and normalized value per criterion.
func writeTable(w io.Writer, criteria []saw.Criterion, ev *saw.Evaluation, precision int32) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"RANK", "ALTERNATIVE", "SCORE"}
	for _, c := range criteria {
		header = append(header, strings.ToUpper(c.Name))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")) //nolint:errcheck

	for _, r := range ev.Results {
		row := []string{fmt.Sprint(r.Rank), r.AlternativeName, formatScore(r.PreferenceScore, precision)}
		for _, c := range criteria {
			row = append(row, formatScore(r.NormalizedValues[c.ID], precision))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")) //nolint:errcheck
	}
	return tw.Flush()
}

// formatScore renders v with a fixed number of decimals. Saturated values
// print as max or -max.
func formatScore(v float64, precision int32) string {
	switch v {
	case saw.SaturatedValue:
		return "max"
	case -saw.SaturatedValue:
		return "-max"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return decimal.NewFromFloat(v).StringFixed(precision)
}
