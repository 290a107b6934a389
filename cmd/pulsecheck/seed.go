package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pulsecheck/pulsecheck/internal/platform"
	"github.com/pulsecheck/pulsecheck/internal/seed"
	"github.com/pulsecheck/pulsecheck/internal/store"
)

func newSeedCmd() *cobra.Command {
	var (
		dsn       string
		customers int
		reset     bool
		rngSeed   int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with synthetic customer activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := platform.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}

			err = seed.Run(cmd.Context(), store.NewStore(db), seed.Options{
				Customers: customers,
				Reset:     reset,
				Seed:      rngSeed,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Seeded %d customers\n", customers)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", defaultDSN(), "Postgres connection string")
	cmd.Flags().IntVar(&customers, "customers", 60, "Number of customers to generate")
	cmd.Flags().BoolVar(&reset, "reset", false, "Truncate existing data first")
	cmd.Flags().Int64Var(&rngSeed, "seed", 0, "RNG seed for reproducible datasets (0 = random)")

	return cmd
}

func defaultDSN() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	return "postgres://localhost:5432/pulsecheck?sslmode=disable"
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
