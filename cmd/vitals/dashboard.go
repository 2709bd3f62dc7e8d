package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vitals/internal/adapter/memory"
	"vitals/internal/aggregate"
	"vitals/internal/app"
	"vitals/internal/domain"
	"vitals/internal/insight"
	"vitals/internal/seed"
)

var (
	dashUser string
	dashDays int
	dashJSON bool
	dashDemo bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print a user's dashboard and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dashUser == "" {
			return fmt.Errorf("--user is required")
		}

		var (
			store      domain.RecordStore
			closeStore = func() error { return nil }
		)
		if dashDemo {
			mem := memory.New()
			if _, err := seed.Load(cmd.Context(), mem, dashUser, seed.NewGenerator(1, time.Now()).Generate(seed.DefaultDays)); err != nil {
				return err
			}
			store = mem
		} else {
			var err error
			if store, closeStore, err = openStore(); err != nil {
				return err
			}
		}
		defer func() { _ = closeStore() }()

		svc, err := newServices(store)
		if err != nil {
			return err
		}
		d, err := svc.dashboard.Compute(cmd.Context(), dashUser, dashDays)
		if err != nil {
			return err
		}

		if dashJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}
		renderDashboard(cmd.OutOrStdout(), dashUser, d)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashUser, "user", "", "user whose records are summarized")
	dashboardCmd.Flags().IntVar(&dashDays, "days", 7, "window length in days")
	dashboardCmd.Flags().BoolVar(&dashJSON, "json", false, "print the dashboard as JSON")
	dashboardCmd.Flags().BoolVar(&dashDemo, "demo", false, "summarize generated sample data instead of the store")
}

func renderDashboard(w io.Writer, user string, d *app.Dashboard) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "\n%s\n", cyan(fmt.Sprintf("=== Dashboard for %s (%d days) ===", user, d.Window.Days)))
	fmt.Fprintf(w, "%s\n\n", gray(fmt.Sprintf("%s .. %s",
		d.Window.Start.Format(domain.DayLayout), d.Window.End.In(d.Window.Location).Format(domain.DayLayout))))

	fmt.Fprintf(w, "%s\n", yellow("Summaries:"))
	for _, c := range domain.AllCategories() {
		label := fmt.Sprintf("  %-12s", c)
		switch {
		case d.IsUnavailable(c):
			fmt.Fprintf(w, "%s %s\n", label, red("unavailable"))
		case d.Summaries[c].Empty():
			fmt.Fprintf(w, "%s %s\n", label, gray("no records"))
		default:
			fmt.Fprintf(w, "%s %s\n", label, describe(d.Summaries[c]))
		}
		if n := d.Malformed[c]; n > 0 {
			fmt.Fprintf(w, "  %-12s %s\n", "", gray(fmt.Sprintf("%d malformed skipped", n)))
		}
	}

	fmt.Fprintf(w, "\n%s\n", yellow("Insights:"))
	if len(d.Insights) == 0 {
		fmt.Fprintf(w, "  %s\n", gray(insight.EmptyStateMessage))
	}
	for _, in := range d.Insights {
		icon, paint := "●", green
		if in.Severity == insight.SeverityCaution {
			icon, paint = "⚠", yellow
		}
		fmt.Fprintf(w, "  %s %s\n", paint(icon), in.Message)
	}
	fmt.Fprintln(w)
}

// describe renders the headline figures of one summary.
func describe(s aggregate.Summary) string {
	head := fmt.Sprintf("%d records", s.Records)
	switch {
	case s.Activity != nil:
		return fmt.Sprintf("%s, %.0f kcal burned, %s mean", head, s.Activity.TotalCaloriesBurned, optional(s.Activity.MeanCaloriesBurned, "%.0f kcal"))
	case s.Nutrition != nil:
		return fmt.Sprintf("%s, %.0f kcal, %.0f g protein", head, s.Nutrition.TotalCalories, s.Nutrition.TotalProtein)
	case s.Mood != nil:
		return fmt.Sprintf("%s, mood %s", head, optional(s.Mood.MeanMood, "%.1f"))
	case s.Water != nil:
		return fmt.Sprintf("%s, %.0f ml", head, s.Water.TotalMl)
	case s.Sleep != nil:
		return fmt.Sprintf("%s, %s min per night", head, optional(s.Sleep.MeanDurationMinutes, "%.0f"))
	case s.Vitals != nil:
		return fmt.Sprintf("%s, latest %s", head, s.Vitals.At.Format(domain.DayLayout))
	case s.Measurement != nil:
		if v, ok := s.Measurement.Values[domain.FieldWeight]; ok {
			return fmt.Sprintf("%s, latest weight %.1f kg", head, v)
		}
		return fmt.Sprintf("%s, latest %s", head, s.Measurement.At.Format(domain.DayLayout))
	}
	return head
}

func optional(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}
