package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmagar/movieboard/internal/config"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/services"
)

// cliOptions are the persistent flags shared by every subcommand.
type cliOptions struct {
	datasetPath string
	dbPath      string
	logLevel    string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "moviequery",
		Short: "Query the movie popularity dataset",
		Long: `moviequery runs the dashboard's ranked, trend and genre count views
against a CSV dataset and prints them as tables. It can also import the
dataset into the catalog database and provision dashboard users.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.datasetPath != "" {
				cfg.Dataset.Path = opts.datasetPath
			}
			if opts.dbPath != "" {
				cfg.Database.Path = opts.dbPath
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.datasetPath, "dataset", "d", "", "path to the cleaned movies CSV (overrides config)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to the SQLite database (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(newTopCmd(opts))
	root.AddCommand(newTrendCmd(opts))
	root.AddCommand(newCountsCmd(opts))
	root.AddCommand(newGenresCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newAddUserCmd(opts))

	return root
}

// analytics loads the dataset once and wraps it for a single query.
func (o *cliOptions) analytics() (*services.AnalyticsService, error) {
	store := dataset.NewStore(o.cfg.Dataset.Path)
	if _, err := store.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", o.cfg.Dataset.Path, err)
	}
	return services.NewAnalyticsService(store, o.cfg.Dataset.RankLimits, o.cfg.Dataset.DefaultRankLimit), nil
}
