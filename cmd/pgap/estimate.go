package main

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/calculation"
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/rgehrsitz/pgap/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Quick shortfall estimate with the simple model",
	Long: `Runs the simple model straight from flags, without a configuration file.

Example:
  pgap estimate --age 35 --salary 50000 --pension 25000 --retire-at 67
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		salaryStr, _ := cmd.Flags().GetString("salary")
		pensionStr, _ := cmd.Flags().GetString("pension")
		retireAt, _ := cmd.Flags().GetInt("retire-at")
		outputFormat, _ := cmd.Flags().GetString("format")

		salary, err := decimal.NewFromString(salaryStr)
		if err != nil {
			return fmt.Errorf("invalid --salary value: %w", err)
		}
		pension, err := decimal.NewFromString(pensionStr)
		if err != nil {
			return fmt.Errorf("invalid --pension value: %w", err)
		}
		if age <= 0 {
			return fmt.Errorf("--age must be positive")
		}

		formatter, err := output.GetFormatterByName(outputFormat)
		if err != nil {
			return err
		}

		engine := newEngine()
		params := engine.SimpleParams
		if retireAt > 0 {
			params.RetirementAge = retireAt
		}

		result, err := calculation.NewSimpleModel(params).CalculateRetirementShortfall(age, salary, pension, params.RetirementAge)
		if err != nil {
			return err
		}

		report := &domain.Report{
			Model:      domain.ModelSimple,
			AsOf:       dateutil.Today(),
			Parameters: params,
			Simple:     result,
		}
		report.Affordability = engine.TakeHome.CalculateAffordability(salary, report.MonthlyCost())

		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	estimateCmd.Flags().Int("age", 0, "Current age in whole years (required)")
	estimateCmd.Flags().String("salary", "0", "Annual salary")
	estimateCmd.Flags().String("pension", "0", "Current pension pot value")
	estimateCmd.Flags().Int("retire-at", 0, "Target retirement age (default: state pension age)")
	estimateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, yaml)")
	_ = estimateCmd.MarkFlagRequired("age")
}
