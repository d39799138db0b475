package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/stats"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var (
		userID   string
		category string
		keyword  string
		top      int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the aggregated dashboard of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateUserID(userID); err != nil {
				return err
			}
			filter := stats.FilterParams{Keyword: keyword}
			if category != "" {
				c, err := exercises.ParseCategory(category)
				if err != nil {
					return err
				}
				filter.Category = c
			}

			dashboard, err := opts.app.Stats.Dashboard(cmd.Context(), userID, filter, opts.now(), top)
			if err != nil {
				return fmt.Errorf("build dashboard: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dashboard)
			}
			return writeDashboard(cmd.OutOrStdout(), dashboard)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id (required)")
	cmd.Flags().StringVar(&category, "category", "", "Only exercises of this category")
	cmd.Flags().StringVar(&keyword, "q", "", "Only exercises whose name or muscle group contains this")
	cmd.Flags().IntVar(&top, "top", stats.DefaultTopN, "How many most frequent exercises to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func validateUserID(userID string) error {
	if userID == "" {
		return errors.New("--user is required")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid --user %q: %w", userID, err)
	}
	return nil
}

func writeDashboard(out io.Writer, d *stats.Dashboard) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n\n", d.CurrentWeekLabel)
	fmt.Fprintf(tw, "Workouts\t%d\n", d.TotalWorkouts)
	fmt.Fprintf(tw, "Total volume\t%.1f kg\n", d.TotalVolume)
	fmt.Fprintf(tw, "Total sets\t%d\n", d.TotalSets)
	fmt.Fprintf(tw, "Cardio\t%d min\n", d.TotalDuration)
	fmt.Fprintf(tw, "Current streak\t%d days\n", d.CurrentStreak)
	fmt.Fprintf(tw, "Longest streak\t%d days\n", d.LongestStreak)

	if len(d.PersonalRecords) > 0 {
		fmt.Fprintf(tw, "\nPersonal records\t\n")
		for _, pr := range d.PersonalRecords {
			fmt.Fprintf(tw, "  %s\t%.1f kg\n", pr.Exercise, pr.Weight)
		}
	}
	if len(d.MostFrequent) > 0 {
		fmt.Fprintf(tw, "\nMost frequent\t\n")
		for _, ec := range d.MostFrequent {
			fmt.Fprintf(tw, "  %s\t%dx\n", ec.Name, ec.Count)
		}
	}
	if len(d.Weeks) > 0 {
		fmt.Fprintf(tw, "\nWeeks\t\n")
		for _, w := range d.Weeks {
			fmt.Fprintf(tw, "  %s\t%d workouts, %d sets, %.1f kg\n", w.Label, len(w.Workouts), w.Sets, w.Volume)
		}
	}

	return tw.Flush()
}
