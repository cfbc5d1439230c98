/*
main.go - plancheck CLI

PURPOSE:
  Command-line companion to the training engine:

    plancheck simulate <plan.toml|plan.json>   Simulate a plan document
    plancheck simulate --example               Simulate the built-in demo
    plancheck check <export.csv>               Validate a plan export

  `simulate` prints the per-skill ledger as a table plus totals.
  `check` recomputes an exported plan's figures and exits non-zero when
  any entry disagrees with the engine beyond tolerance.

SEE ALSO:
  - factory: Plan document loading
  - validate: Export validation
*/
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/training-engine/factory"
	"github.com/warp/training-engine/training"
	"github.com/warp/training-engine/validate"
)

var useExample bool

func main() {
	root := &cobra.Command{
		Use:           "plancheck",
		Short:         "Simulate training plans and validate plan exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	simulate := &cobra.Command{
		Use:   "simulate [plan-file]",
		Short: "Simulate a plan document and print the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	simulate.Flags().BoolVar(&useExample, "example", false, "simulate the built-in example plan")

	check := &cobra.Command{
		Use:   "check <export.csv>",
		Short: "Validate an exported plan against the engine's formulas",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}

	root.AddCommand(simulate, check)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// =============================================================================
// SIMULATE
// =============================================================================

func runSimulate(cmd *cobra.Command, args []string) error {
	var doc *factory.PlanDoc
	switch {
	case useExample:
		doc = factory.ExamplePlan()
	case len(args) == 1:
		loaded, err := factory.LoadFile(args[0])
		if err != nil {
			return err
		}
		doc = loaded
	default:
		return fmt.Errorf("provide a plan file or --example")
	}

	scheduler, plan, booster, err := doc.Build()
	if err != nil {
		return err
	}
	ledger, err := scheduler.Simulate(plan, booster)
	if err != nil {
		return err
	}

	printLedger(cmd.OutOrStdout(), doc, ledger)
	return nil
}

func printLedger(out io.Writer, doc *factory.PlanDoc, ledger *training.PlanLedger) {
	if doc.Booster != nil && doc.Booster.Bonus > 0 {
		fmt.Fprintf(out, "Booster: +%d for %s\n\n", doc.Booster.Bonus, training.FormatHours(doc.Booster.Hours))
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKILL\tLEVEL\tSP\tBASE\tACTUAL\tSAVED\tBOOSTER LEFT")
	for _, e := range ledger.Entries {
		fmt.Fprintf(w, "%s\t%d→%d\t%d\t%s\t%s\t%s\t%s\n",
			e.Skill, e.FromLevel, e.TargetLevel, e.SP,
			training.FormatHours(e.BaseHours),
			training.FormatHours(e.ActualHours),
			training.FormatHours(e.SavedHours),
			training.FormatHours(e.BoosterHoursLeft),
		)
	}
	fmt.Fprintf(w, "TOTAL\t\t\t%s\t%s\t%s\t\n",
		training.FormatHours(ledger.TotalBaseHours),
		training.FormatHours(ledger.TotalActualHours),
		training.FormatHours(ledger.TotalSavedHours),
	)
	w.Flush()

	if pct, ok := ledger.PercentSaved(); ok {
		fmt.Fprintf(out, "\nTime saved: %.1f%%\n", pct)
	}
}

// =============================================================================
// CHECK
// =============================================================================

func runCheck(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := validate.ParseExport(f)
	if err != nil {
		return err
	}
	if len(result.Entries) == 0 {
		return fmt.Errorf("no valid entries found in %s", args[0])
	}

	out := cmd.OutOrStdout()
	if result.Metadata.CloneStatus != "" {
		fmt.Fprintf(out, "Clone status: %s\n", result.Metadata.CloneStatus)
	}
	fmt.Fprintf(out, "Entries: %d\n\n", len(result.Entries))

	report := validate.CheckExport(result.Entries)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKILL\tLVL\tSP/H\tRATE\tTIME\tSAVED\tSTATUS")
	for _, res := range report.Results {
		e := res.Entry
		status := "OK"
		if len(res.Mismatches) > 0 {
			status = "ERROR"
		}
		saved := "-"
		if e.TimeSavedHours > 0 {
			saved = training.FormatHours(e.TimeSavedHours)
		}
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.1f\t%s\t%s\t%s\n",
			e.SkillName, e.Level, e.SPPerHourOmega, e.TrainingRate,
			training.FormatHours(e.TrainingTimeHours), saved, status)
		for _, m := range res.Mismatches {
			fmt.Fprintf(w, "\t\t\t\t\t\t%s\n", m)
		}
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal training time: %s\n", training.FormatHours(report.TotalHours))
	if report.TotalOldHours > 0 {
		fmt.Fprintf(out, "Baseline time:       %s\n", training.FormatHours(report.TotalOldHours))
		fmt.Fprintf(out, "Total time saved:    %s\n", training.FormatHours(report.TotalSavedHrs))
	}
	if report.HasPercentSave {
		fmt.Fprintf(out, "Percentage saved:    %.1f%%\n", report.PercentSaved)
	}
	for _, line := range result.Skipped {
		fmt.Fprintf(out, "Skipped unparseable row: %s\n", line)
	}

	if !report.Clean() {
		return fmt.Errorf("%d calculation mismatches found", report.MismatchCount)
	}
	fmt.Fprintln(out, "\nAll calculations match the engine's formulas")
	return nil
}
