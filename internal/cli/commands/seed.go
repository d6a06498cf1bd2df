package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/cli/config"
	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
	"github.com/leapstack-labs/samplechart/pkg/sources/file"
	"github.com/leapstack-labs/samplechart/pkg/sources/generator"
	"github.com/leapstack-labs/samplechart/pkg/sources/sqldb"
	"github.com/leapstack-labs/samplechart/pkg/sources/xlsx"
)

// SeedOptions holds options for the seed command.
type SeedOptions struct {
	Target string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write generated datasets into a data source",
		Long: `Generate the built-in datasets (small, medium, large) and store them
where a sql, file or xlsx source will read them.

The target defaults to the configured source type and uses the same
source settings (dsn, dir, path).`,
		Example: `  # Seed a SQLite database
  samplechart seed --source sql --driver sqlite --dsn charts.db

  # Write one YAML file per sample size
  samplechart seed --to file --dir ./datasets

  # Write a workbook with one sheet per sample size
  samplechart seed --to xlsx --path datasets.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "to", "", "Seed target: sql, file or xlsx (default: source.type)")
	_ = cmd.RegisterFlagCompletionFunc("to", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{sqldb.Name, file.Name, xlsx.Name}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	ctx := cmd.Context()

	target := opts.Target
	if target == "" {
		target = cfg.Source.Type
	}

	datasets, order, err := generateDatasets(ctx, cfg, logger)
	if err != nil {
		return err
	}

	switch target {
	case sqldb.Name:
		err = seedSQL(ctx, cfg, logger, datasets, order)
	case file.Name:
		err = seedFiles(cfg, datasets, order)
	case xlsx.Name:
		if cfg.Source.Path == "" {
			return fmt.Errorf("source.path is required to seed a workbook")
		}
		err = xlsx.WriteWorkbook(cfg.Source.Path, datasets, order)
	default:
		return fmt.Errorf("cannot seed source type %q (want %s, %s or %s)", target, sqldb.Name, file.Name, xlsx.Name)
	}
	if err != nil {
		return err
	}

	for _, size := range order {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %-8s %5d points\n", size, datasets[size].Len())
	}
	return nil
}

// generateDatasets produces a dataset for every configured size the generator knows.
func generateDatasets(ctx context.Context, cfg *config.Config, logger *slog.Logger) (map[string]*core.Dataset, []string, error) {
	gen := generator.New(logger)
	if err := gen.Open(ctx, source.Config{Seed: cfg.Source.Seed}); err != nil {
		return nil, nil, err
	}

	datasets := make(map[string]*core.Dataset)
	var order []string
	for _, size := range cfg.SampleSizes {
		if _, ok := generator.Sizes[size]; !ok {
			logger.Warn("no generated dataset for sample size, skipping", slog.String("sample_size", size))
			continue
		}
		ds, err := gen.GetDataSet(ctx, size)
		if err != nil {
			return nil, nil, err
		}
		datasets[size] = ds
		order = append(order, size)
	}
	if len(order) == 0 {
		return nil, nil, fmt.Errorf("none of the sample sizes %v can be generated", cfg.SampleSizes)
	}
	return datasets, order, nil
}

func seedSQL(ctx context.Context, cfg *config.Config, logger *slog.Logger, datasets map[string]*core.Dataset, order []string) error {
	settings := cfg.SourceSettings()
	settings.Type = sqldb.Name

	src, err := source.New(ctx, settings, logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	db, ok := src.(*sqldb.Source)
	if !ok {
		return fmt.Errorf("source %q does not support seeding", src.Name())
	}
	for _, size := range order {
		if err := db.Seed(ctx, size, datasets[size]); err != nil {
			return fmt.Errorf("failed to seed %s: %w", size, err)
		}
	}
	return nil
}

func seedFiles(cfg *config.Config, datasets map[string]*core.Dataset, order []string) error {
	if cfg.Source.Dir == "" {
		return fmt.Errorf("source.dir is required to seed dataset files")
	}
	for _, size := range order {
		if err := file.WriteDataset(cfg.Source.Dir, size, datasets[size]); err != nil {
			return fmt.Errorf("failed to write %s: %w", size, err)
		}
	}
	return nil
}
