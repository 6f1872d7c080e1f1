package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmagar/movieboard/internal/catalog"
	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/services"
)

func newImportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the dataset into the catalog database",
		Long: `import parses the CSV dataset and replaces the catalog table with its
rows. The load is recorded in the dataset load history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.Initialize(opts.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			store := dataset.NewStore(opts.cfg.Dataset.Path)
			svc := services.NewDatasetReloadService(db, models.NewJobManager(), store, catalog.NewManager(db), nil)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			result, err := svc.ReloadNow(ctx, services.TriggerCLI)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies from %s (%d rows read, %d skipped)\n",
				result.Mirrored, result.Source, result.RowsRead, result.RowsSkipped)
			return nil
		},
	}
}

func newAddUserCmd(opts *cliOptions) *cobra.Command {
	var email, password, role string
	cmd := &cobra.Command{
		Use:   "adduser <username>",
		Short: "Create a dashboard user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "admin" && role != "user" {
				return fmt.Errorf("role must be admin or user, got %q", role)
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			db, err := database.Initialize(opts.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			id, err := database.CreateUser(db, args[0], email, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s with role %s (id %d)\n", args[0], role, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&role, "role", "user", "admin or user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
