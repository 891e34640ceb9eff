package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/healthai/pkg/catalog"
	"github.com/helmcode/healthai/pkg/db"
	"github.com/helmcode/healthai/pkg/formatter"
)

var (
	catalogSearch       string
	catalogCategory     string
	catalogOutputFormat string
	catalogExportFile   string
)

func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and manage the reference catalog",
		Long: `Browse the symptoms, condition patterns and lab reference ranges the
analyzers work from, export the catalog as YAML or load it into PostgreSQL.

Examples:
  # Find respiratory symptoms mentioning asthma
  healthai catalog symptoms --search asthma --category Respiratory

  # Export the built-in catalog for editing
  healthai catalog export -f catalog.yaml

  # Load an edited catalog into the database named by DATABASE_URL
  healthai catalog sync --catalog catalog.yaml`,
	}

	cmd.PersistentFlags().StringVarP(&catalogOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	cmd.AddCommand(
		newCatalogSymptomsCmd(),
		newCatalogConditionsCmd(),
		newCatalogLabsCmd(),
		newCatalogExportCmd(),
		newCatalogSyncCmd(),
	)

	return cmd
}

func newCatalogSymptomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "List symptom names, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			if catalogCategory != "" && catalogCategory != catalog.CategoryAll && !hasCategory(store, catalogCategory) {
				return fmt.Errorf("unknown category %q", catalogCategory)
			}
			names := store.Filter(catalogSearch, catalogCategory, nil)
			if names == nil {
				names = []string{}
			}
			return formatter.Display(cmd.OutOrStdout(), names, catalogOutputFormat)
		},
	}
	cmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "Case-insensitive match on name or tags")
	cmd.Flags().StringVarP(&catalogCategory, "category", "c", catalog.CategoryAll, "Restrict to one category")
	return cmd
}

func newCatalogConditionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions",
		Short: "List condition patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			conditions := store.Conditions()
			if catalogOutputFormat != "human" {
				return formatter.Display(cmd.OutOrStdout(), conditions, catalogOutputFormat)
			}
			names := make([]string, 0, len(conditions))
			for _, c := range conditions {
				names = append(names, fmt.Sprintf("%s [%s]", c.Name, c.Urgency))
			}
			return formatter.Display(cmd.OutOrStdout(), names, catalogOutputFormat)
		},
	}
}

func newCatalogLabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labs",
		Short: "List lab reference entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			labs := store.LabReferences()
			if catalogOutputFormat != "human" {
				return formatter.Display(cmd.OutOrStdout(), labs, catalogOutputFormat)
			}
			lines := make([]string, 0, len(labs))
			for _, l := range labs {
				lines = append(lines, fmt.Sprintf("%s (min %g %s)", l.Name, l.Min, l.Unit))
			}
			return formatter.Display(cmd.OutOrStdout(), lines, catalogOutputFormat)
		},
	}
}

func newCatalogExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			data, err := store.Marshal()
			if err != nil {
				return err
			}
			if catalogExportFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(catalogExportFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write catalog: %w", err)
			}
			printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Catalog written to %s", catalogExportFile))
			return nil
		},
	}
	cmd.Flags().StringVarP(&catalogExportFile, "file", "f", "", "Destination file (default stdout)")
	return cmd
}

func newCatalogSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the PostgreSQL catalog with the built-in or --catalog one",
		Long: `Create the catalog tables if needed and replace their contents with the
built-in catalog, or the file given with --catalog, in a single transaction.
The database is taken from DATABASE_URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for catalog sync")
			}

			var store *catalog.Store
			if catalogFile != "" {
				store, err = catalog.LoadFile(catalogFile)
			} else {
				store, err = catalog.Default()
			}
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			ctx := cmd.Context()
			s := newSpinner("Syncing catalog to PostgreSQL...")
			s.Start()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				s.Stop()
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			err = catalog.SyncPostgres(ctx, pool, store)
			s.Stop()
			if err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Synced %d symptoms, %d conditions, %d lab references",
				len(store.Symptoms()), len(store.Conditions()), len(store.LabReferences())))
			return nil
		},
	}
}

func loadCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	if err := validFormat(catalogOutputFormat); err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return store, nil
}

func hasCategory(store *catalog.Store, category string) bool {
	for _, c := range store.Categories() {
		if c == category {
			return true
		}
	}
	return false
}
