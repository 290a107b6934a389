package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsecheck/pulsecheck/internal/platform"
	"github.com/pulsecheck/pulsecheck/internal/report"
	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/pkg/config"
	"github.com/pulsecheck/pulsecheck/pkg/health"
)

func newReportCmd() *cobra.Command {
	var (
		configPath string
		dsn        string
		backend    string
		localPath  string
		bucket     string
		region     string
		endpoint   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Score the whole portfolio and archive a report",
		Long: `Scores every customer in the database as of now and writes the aggregate
report to the configured storage backend (local directory, S3, or GCS).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags override file config.
			if backend != "" {
				cfg.Storage.Backend = backend
			}
			if localPath != "" {
				cfg.Storage.LocalPath = localPath
			}
			if bucket != "" {
				cfg.Storage.Bucket = bucket
			}
			if region != "" {
				cfg.Storage.Region = region
			}
			if endpoint != "" {
				cfg.Storage.Endpoint = endpoint
			}
			if dsn != "" {
				cfg.Server.DatabaseURL = dsn
			}

			storage, err := buildStorage(cmd, cfg.Storage)
			if err != nil {
				return err
			}

			engine, err := health.NewEngine(cfg.EngineConfig())
			if err != nil {
				return fmt.Errorf("building engine: %w", err)
			}

			db, err := openDB(cfg.Server.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := platform.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}

			svc := report.NewService(store.NewStore(db), engine, storage)
			rep, err := svc.Run(ctx, time.Time{})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Report %s archived: %d customers, average score %.2f\n",
				rep.ID, rep.CustomerCount, rep.AverageScore)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "pulsecheck.yaml", "Path to config file")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection string (overrides config)")
	cmd.Flags().StringVar(&backend, "storage", "", "Storage backend: local, s3 or gcs")
	cmd.Flags().StringVar(&localPath, "local-path", "", "Base directory for the local backend")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket name for s3/gcs backends")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for the s3 backend")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3-compatible endpoint override")

	return cmd
}

func buildStorage(cmd *cobra.Command, sc config.StorageConfig) (report.StorageClient, error) {
	switch sc.Backend {
	case "", "local":
		dir := sc.LocalPath
		if dir == "" {
			dir = "/tmp/pulsecheck-reports"
		}
		return report.NewLocalStorage(dir), nil
	case "s3":
		return report.NewS3Storage(cmd.Context(), report.S3Config{
			Bucket:    sc.Bucket,
			Region:    sc.Region,
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
		})
	case "gcs":
		return report.NewGCSStorage(cmd.Context(), sc.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}
