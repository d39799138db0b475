// Package cli holds the fitlogctl operator commands.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type dashboardBuilder interface {
	Dashboard(ctx context.Context, userID string, filter stats.FilterParams, now time.Time, topN int) (*stats.Dashboard, error)
}

type weeklySummarizer interface {
	WeeklySummary(ctx context.Context, params summary.Params) (*summary.WeeklySummary, error)
}

// App holds what the commands run against. Built once the config flags are parsed.
type App struct {
	Migrate   func(ctx context.Context) error
	Stats     dashboardBuilder
	Summaries weeklySummarizer
	Now       func() time.Time
}

// AppFactory builds the App for the selected environment and config file.
type AppFactory func(ctx context.Context, env, configPath string) (*App, error)

type rootOptions struct {
	env        string
	configPath string
	app        *App
}

func addConfigFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.StringVar(&opts.env, "env", "development", "environment [prod | production | dev | development]")
	fs.StringVar(&opts.configPath, "config", "./config.toml", "path for the TOML config file")
}

func (o *rootOptions) now() time.Time {
	if o.app != nil && o.app.Now != nil {
		return o.app.Now()
	}
	return time.Now()
}

// NewRootCmd creates the fitlogctl command with all subcommands registered.
func NewRootCmd(newApp AppFactory) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "fitlogctl",
		Short:         "Operator tools for the fitlog backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context(), opts.env, opts.configPath)
			if err != nil {
				return err
			}
			if app == nil {
				return errors.New("no app built")
			}
			opts.app = app
			return nil
		},
	}
	addConfigFlags(root.PersistentFlags(), opts)

	root.AddCommand(
		newMigrateCmd(opts),
		newDashboardCmd(opts),
		newSummaryCmd(opts),
	)

	return root
}
