package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"trip-logbook-service/internal/config"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/services"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hosctl",
		Short:        "Plan hours-of-service compliant driver logbooks offline",
		SilenceUsage: true,
	}
	root.AddCommand(newSimulateCmd(), newClockCmd())
	return root
}

func newSimulateCmd() *cobra.Command {
	var (
		driving float64
		cycle   float64
		duty    float64
		pickup  string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the daily duty logs for a trip",
		Example: `  hosctl simulate --driving 20 --duty 2 --pickup "Depot A"
  HOS_MAX_CYCLE_HOURS=60 hosctl simulate --driving 45 --cycle 30 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.LoadRules()
			if err != nil {
				return err
			}

			res := services.SimulateLogbook(rules, domain.TripDemand{
				TotalDrivingHours: driving,
				CycleHoursUsed:    cycle,
				InitialDutyHours:  duty,
				PickupLabel:       pickup,
			})

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"logbook":                   res.Logbook,
					"fully_scheduled":           res.FullyScheduled,
					"unscheduled_driving_hours": res.UnscheduledDrivingHours,
				})
			}

			return printLogbook(cmd, res)
		},
	}

	cmd.Flags().Float64Var(&driving, "driving", 0, "total driving hours the trip needs")
	cmd.Flags().Float64Var(&cycle, "cycle", 0, "hours already used in the current cycle")
	cmd.Flags().Float64Var(&duty, "duty", 0, "non-driving on-duty hours on day one")
	cmd.Flags().StringVar(&pickup, "pickup", "", "pickup label for the duty note")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("driving")

	return cmd
}

func printLogbook(cmd *cobra.Command, res services.SimulationResult) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tSTART\tSTATUS\tHOURS\tNOTES")
	for _, d := range res.Logbook {
		for _, e := range d.Events {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", d.Day, e.StartTime, e.Status, e.DurationHours, e.Notes)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\ndays=%d driving=%.2fh fully_scheduled=%t\n",
		len(res.Logbook), res.ScheduledDrivingHours, res.FullyScheduled)
	if !res.FullyScheduled {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %.2fh of driving could not be scheduled within the cycle\n", res.UnscheduledDrivingHours)
	}
	return nil
}

func newClockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock OFFSET...",
		Short: "Render hour offsets as HH:MM wall-clock times",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("clock: %q is not a number", a)
				}
				if v < 0 {
					return fmt.Errorf("clock: %q is negative", a)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a, services.FormatClock(v))
			}
			return nil
		},
	}
}
