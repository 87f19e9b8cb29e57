package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/itrdesk/tax-engine/internal/calculation"
	"github.com/itrdesk/tax-engine/internal/output"
	"github.com/itrdesk/tax-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalFlags collects string flags that are parsed as decimals after cobra reads them
type decimalFlags map[string]*string

func (d decimalFlags) add(cmd *cobra.Command, name, usage string) {
	v := new(string)
	cmd.Flags().StringVar(v, name, "0", usage)
	d[name] = v
}

func (d decimalFlags) get(name string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(*d[name])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return v, nil
}

// parse resolves every named flag, stopping at the first bad value
func (d decimalFlags) parse(names ...string) ([]decimal.Decimal, error) {
	values := make([]decimal.Decimal, len(names))
	for i, name := range names {
		v, err := d.get(name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func newDeductionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deduction",
		Short: "Quick calculators for individual deductions and exemptions",
	}
	cmd.AddCommand(newHRACmd(), newSection80CCmd(a), newGratuityCmd(a))
	return cmd
}

func newHRACmd() *cobra.Command {
	flags := decimalFlags{}
	var metro bool

	cmd := &cobra.Command{
		Use:   "hra",
		Short: "House rent allowance exemption",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := flags.parse("hra", "rent", "basic")
			if err != nil {
				return err
			}
			exempt := calculation.CalculateHRAExemption(calculation.HRAInput{
				HRAReceived: v[0],
				RentPaid:    v[1],
				BasicSalary: v[2],
				IsMetro:     metro,
			})
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "HRA exemption: %s\n", output.FormatCurrency(exempt))
			fmt.Fprintf(out, "Taxable HRA:   %s\n", output.FormatCurrency(v[0].Sub(exempt)))
			return nil
		},
	}

	flags.add(cmd, "hra", "annual HRA received")
	flags.add(cmd, "rent", "annual rent paid")
	flags.add(cmd, "basic", "annual basic salary plus dearness allowance")
	cmd.Flags().BoolVar(&metro, "metro", false, "rented home is in a metro city")
	return cmd
}

func newSection80CCmd(a *app) *cobra.Command {
	flags := decimalFlags{}
	names := []string{"ppf", "elss", "life-insurance", "nsc", "tuition-fees", "home-loan-principal", "sukanya", "tax-saver-fd", "epf", "other"}

	cmd := &cobra.Command{
		Use:   "80c",
		Short: "Section 80C group deduction",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := flags.parse(names...)
			if err != nil {
				return err
			}
			result := a.engine.Calculator.Deductions.Section80C(calculation.Section80CInput{
				PPF:               v[0],
				ELSS:              v[1],
				LifeInsurance:     v[2],
				NSC:               v[3],
				TuitionFees:       v[4],
				HomeLoanPrincipal: v[5],
				SukanyaSamriddhi:  v[6],
				TaxSaverFD:        v[7],
				EPF:               v[8],
				Other:             v[9],
			})

			out := cmd.OutOrStdout()
			for _, alloc := range result.Allocations {
				fmt.Fprintf(out, "%-22s claimed %16s allowed %16s\n", alloc.Item, output.FormatCurrency(alloc.Claimed), output.FormatCurrency(alloc.Allowed))
			}
			fmt.Fprintf(out, "Total claimed: %s\n", output.FormatCurrency(result.Claimed))
			fmt.Fprintf(out, "Eligible:      %s\n", output.FormatCurrency(result.Eligible))
			return nil
		},
	}

	for _, name := range names {
		flags.add(cmd, name, "amount invested in "+name)
	}
	return cmd
}

func newGratuityCmd(a *app) *cobra.Command {
	flags := decimalFlags{}
	var joined, left string
	var years int

	cmd := &cobra.Command{
		Use:   "gratuity",
		Short: "Gratuity exemption for a non-government employee",
		Example: `  itrcalc deduction gratuity --received 1000000 --salary 52000 --years 10
  itrcalc deduction gratuity --received 1000000 --salary 52000 --joined 2014-06-01 --left 2025-01-15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := flags.parse("received", "salary")
			if err != nil {
				return err
			}
			if joined != "" || left != "" {
				if joined == "" || left == "" {
					return errors.New("--joined and --left must be given together")
				}
				join, err := time.Parse("2006-01-02", joined)
				if err != nil {
					return fmt.Errorf("invalid --joined: %w", err)
				}
				leave, err := time.Parse("2006-01-02", left)
				if err != nil {
					return fmt.Errorf("invalid --left: %w", err)
				}
				years = dateutil.GratuityServiceYears(join, leave)
			}

			exempt := a.engine.Calculator.Deductions.GratuityExemption(calculation.GratuityInput{
				Received:       v[0],
				MonthlySalary:  v[1],
				YearsOfService: years,
			})
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Years of service:   %d\n", years)
			fmt.Fprintf(out, "Gratuity exemption: %s\n", output.FormatCurrency(exempt))
			fmt.Fprintf(out, "Taxable gratuity:   %s\n", output.FormatCurrency(v[0].Sub(exempt)))
			return nil
		},
	}

	flags.add(cmd, "received", "gratuity received")
	flags.add(cmd, "salary", "last drawn monthly basic salary plus dearness allowance")
	cmd.Flags().IntVar(&years, "years", 0, "completed years of service")
	cmd.Flags().StringVar(&joined, "joined", "", "date of joining (YYYY-MM-DD)")
	cmd.Flags().StringVar(&left, "left", "", "date of leaving (YYYY-MM-DD)")
	return cmd
}
