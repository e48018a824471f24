package main

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/pgap/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the smallest change that closes the capital shortfall",
	Long: `Solve for the smallest change to one lever that fully funds the plan.

Targets:
  retirement_age  Latest retirement age to try is --max-age
  lump_sum        One-off payment into the pension now
  contribution    Total monthly contribution (detailed model only)
  growth_rate     Annual growth rate on the pot
  all             Every target that applies to the model

Examples:
  pgap break-even config.yaml --target lump_sum
  pgap break-even config.yaml --target retirement_age --max-age 80
  pgap break-even config.yaml --target all --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		targetStr, _ := cmd.Flags().GetString("target")
		outputFormat, _ := cmd.Flags().GetString("format")
		if outputFormat != "table" && outputFormat != "json" {
			return fmt.Errorf("unsupported format: %s (valid: table, json)", outputFormat)
		}

		constraints := breakeven.DefaultConstraints()
		if maxAge, _ := cmd.Flags().GetInt("max-age"); maxAge > 0 {
			constraints.MaxRetirementAge = maxAge
		}
		if maxLump, _ := cmd.Flags().GetFloat64("max-lump-sum"); maxLump > 0 {
			constraints.MaxLumpSum = decimal.NewFromFloat(maxLump)
		}

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}
		var asOf time.Time
		if cfg.AsOf != nil {
			asOf = *cfg.AsOf
		}

		solver := breakeven.NewDefaultSolver(newEngine())

		if targetStr == "all" {
			multi, err := solver.SolveAll(cmd.Context(), cfg, constraints, asOf)
			if err != nil {
				return fmt.Errorf("break-even analysis failed: %w", err)
			}
			if outputFormat == "json" {
				data, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMulti(multi))
			return nil
		}

		target, err := breakeven.ParseTarget(targetStr)
		if err != nil {
			return err
		}
		result, err := solver.Solve(cmd.Context(), breakeven.SolveRequest{
			Config:      cfg,
			Target:      target,
			Constraints: constraints,
			AsOf:        asOf,
		})
		if err != nil {
			return fmt.Errorf("break-even analysis failed: %w", err)
		}

		if outputFormat == "json" {
			data, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, data)
			return nil
		}
		fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
		return nil
	},
}

func init() {
	breakEvenCmd.Flags().StringP("target", "t", "all", "Lever to solve for (retirement_age, lump_sum, contribution, growth_rate, all)")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakEvenCmd.Flags().Int("max-age", 0, "Latest retirement age to consider (default 75)")
	breakEvenCmd.Flags().Float64("max-lump-sum", 0, "Largest lump sum to consider (default 2000000)")
	breakEvenCmd.Flags().String("parameters", "", "YAML file of parameter overrides")
	breakEvenCmd.Flags().String("as-of", "", "Reference date (YYYY-MM-DD), default today")
}
