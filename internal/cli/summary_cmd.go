package cli

import (
	"fmt"
	"time"

	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"

	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var (
		userID   string
		userName string
		week     string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print (and generate if needed) the weekly AI summary of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateUserID(userID); err != nil {
				return err
			}
			weekStart, err := parseWeek(week, opts.now())
			if err != nil {
				return err
			}

			s, err := opts.app.Summaries.WeeklySummary(cmd.Context(), summary.Params{
				UserID:    userID,
				UserName:  userName,
				WeekStart: weekStart,
				Force:     force,
			})
			if err != nil {
				return fmt.Errorf("weekly summary: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.WeekLabel)
			fmt.Fprintf(out, "generated at %s\n\n", s.GeneratedAt.UTC().Format(time.RFC3339))
			fmt.Fprintln(out, s.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id (required)")
	cmd.Flags().StringVar(&userName, "name", "", "Name used in the prompt")
	cmd.Flags().StringVar(&week, "week", "", "Any date (YYYY-MM-DD) or a week label; defaults to the current week")
	cmd.Flags().BoolVar(&force, "force", false, "Generate a new summary even if one was made today")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// parseWeek accepts a date or a "Week of ..." label and returns the week's Monday.
func parseWeek(week string, now time.Time) (time.Time, error) {
	if week == "" {
		return stats.WeekStart(now), nil
	}
	if t, err := time.Parse(time.DateOnly, week); err == nil {
		return stats.WeekStart(t), nil
	}
	t, err := summary.ParseWeekLabel(week)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --week %q: use YYYY-MM-DD or a week label", week)
	}
	return t, nil
}
