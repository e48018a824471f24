package main

import (
	"fmt"

	"github.com/rgehrsitz/pgap/internal/compare"
	"github.com/rgehrsitz/pgap/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare a configuration against what-if templates",
	Long: `Compare the configured plan against alternative plans.

Examples:
  pgap compare config.yaml --with retire_later_1yr,lump_sum_10k
  pgap compare config.yaml --with low_growth,high_inflation --format csv
  pgap compare config.yaml --with add_lump_sum:amount=20000
  pgap compare --list-templates  # Show all available templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
		}

		templatesStr, _ := cmd.Flags().GetString("with")
		outputFormat, _ := cmd.Flags().GetString("format")

		if templatesStr == "" {
			return fmt.Errorf("--with flag is required to specify templates to compare (or use --list-templates)")
		}
		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 {
			return fmt.Errorf("no valid templates specified in --with flag")
		}

		cfg, err := loadConfiguration(cmd, args[0])
		if err != nil {
			return err
		}

		compareEngine := compare.NewCompareEngine(newEngine())
		compSet, err := compareEngine.Compare(cmd.Context(), cfg, compare.CompareOptions{
			Templates: templateNames,
			AsOf:      cfg.AsOf,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		compSet.ConfigPath = args[0]

		switch outputFormat {
		case "table", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
		case "csv":
			data, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				return err
			}
			fmt.Fprint(out, data)
		case "json":
			data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, data)
		default:
			return fmt.Errorf("unsupported format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().String("with", "", "Comma-separated list of templates or transform specs to compare (required)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	compareCmd.Flags().String("parameters", "", "YAML file of parameter overrides")
	compareCmd.Flags().String("as-of", "", "Reference date (YYYY-MM-DD), default today")
}
