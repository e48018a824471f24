package main

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/config"
	"github.com/rgehrsitz/pgap/internal/domain"
	"github.com/rgehrsitz/pgap/internal/output"
	"github.com/spf13/cobra"
)

// loadConfiguration reads an input file, layers the --parameters and --as-of flags on top
// and validates the result
func loadConfiguration(cmd *cobra.Command, inputFile string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Lookup("parameters") != nil {
		paramsFile, _ := cmd.Flags().GetString("parameters")
		if paramsFile != "" {
			overrides, err := parser.LoadParameterOverrides(paramsFile)
			if err != nil {
				return nil, err
			}
			cfg.Parameters = cfg.Parameters.Merge(overrides)
		}
	}

	if cmd.Flags().Lookup("as-of") != nil {
		asOfStr, _ := cmd.Flags().GetString("as-of")
		asOf, err := parseAsOf(asOfStr)
		if err != nil {
			return nil, err
		}
		if asOf != nil {
			cfg.AsOf = asOf
		}
	}

	// Overrides and the reference date can invalidate a file that loaded cleanly
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func fileExtension(format string) string {
	if format == "console" {
		return "txt"
	}
	return format
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate the retirement shortfall for a member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("format")
		formatter, err := output.GetFormatterByName(outputFormat)
		if err != nil {
			return err
		}

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		report, err := newEngine().Run(cfg)
		if err != nil {
			return err
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(formatter, report, fileExtension(formatter.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := formatter.Format(report)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var affordCmd = &cobra.Command{
	Use:   "afford [input-file]",
	Short: "Check whether the monthly funding cost fits take-home pay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		report, err := newEngine().Run(cfg)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(output.FormatAffordability(report.Affordability))
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(inputFile); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", inputFile)
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if err := parser.SaveToFile(parser.CreateExampleConfiguration(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, yaml)")
	calculateCmd.Flags().String("parameters", "", "YAML file of parameter overrides")
	calculateCmd.Flags().String("as-of", "", "Reference date (YYYY-MM-DD), default today")
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	affordCmd.Flags().String("parameters", "", "YAML file of parameter overrides")
	affordCmd.Flags().String("as-of", "", "Reference date (YYYY-MM-DD), default today")
}
