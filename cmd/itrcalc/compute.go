package main

import (
	"encoding/json"
	"fmt"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/itrdesk/tax-engine/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// loadReport parses, validates and computes the profile in filename
func (a *app) loadReport(cmd *cobra.Command, filename string) (*domain.ComputationReport, error) {
	profile, err := a.parser.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	report, err := a.engine.Compute(cmd.Context(), profile)
	if err != nil {
		return nil, fmt.Errorf("computation failed: %w", err)
	}
	report.Assumptions = output.GenerateAssumptions(a.parser.Rules)
	return report, nil
}

func newComputeCmd(a *app) *cobra.Command {
	var inputFile, format, outputDir string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute tax under both regimes for a taxpayer profile",
		Example: `  itrcalc compute -i profile.yaml
  itrcalc compute -i profile.yaml -f html -o reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.loadReport(cmd, inputFile)
			if err != nil {
				return err
			}

			if outputDir != "" {
				files, err := output.GenerateReport(report, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
				}
				return nil
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q (available: %v)", output.ErrUnsupportedFormat, format, output.AvailableFormatterNames())
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "taxpayer profile YAML file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write the report into this directory instead of stdout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var inputFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Recommend the cheaper regime for a taxpayer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.loadReport(cmd, inputFile)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report.Comparison)
			}

			cmp := report.Comparison
			fmt.Fprintf(cmd.OutOrStdout(), "Old regime tax: %s\n", output.FormatCurrency(cmp.OldRegimeTax))
			fmt.Fprintf(cmd.OutOrStdout(), "New regime tax: %s\n", output.FormatCurrency(cmp.NewRegimeTax))
			fmt.Fprintln(cmd.OutOrStdout(), output.AnalyzeReport(report).Explanation)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "taxpayer profile YAML file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a taxpayer profile without computing tax",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.parser.LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid for AY %s\n", inputFile, profile.AssessmentYear)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "taxpayer profile YAML file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a sample taxpayer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.parser.WriteExampleProfile(outputFile); err != nil {
				return fmt.Errorf("failed to write example profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example profile written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "example_profile.yaml", "file to write")
	return cmd
}

func newAssetTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "asset-types",
		Short: "List capital asset classes and their rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := a.parser.Rules
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Asset types for AY %s\n\n", rules.AssessmentYear)
			fmt.Fprintf(out, "%-24s %-30s %8s %8s %8s %14s\n", "ID", "NAME", "STCG", "LTCG", "MONTHS", "EXEMPTION")
			for _, at := range rules.AssetTypes {
				exemption := "-"
				if at.ExemptionLimit != nil {
					exemption = output.FormatCurrency(*at.ExemptionLimit)
				}
				fmt.Fprintf(out, "%-24s %-30s %8s %8s %8d %14s\n", at.ID, at.Name, slabOrRate(at.ShortTermRate), slabOrRate(at.LongTermRate), at.LongTermThreshold, exemption)
			}
			return nil
		},
	}
}

// slabOrRate shows a zero rate as taxed at slab rates
func slabOrRate(rate decimal.Decimal) string {
	if rate.IsZero() {
		return "slab"
	}
	return output.FormatPercentage(rate)
}
