package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ufosc/minihack-registration/internal/config"
	"github.com/ufosc/minihack-registration/internal/db"
	"github.com/ufosc/minihack-registration/internal/export"
	"github.com/ufosc/minihack-registration/internal/repository"
)

var exportOut string

// Organizer-side export tool: same CSV shape as the admin download, without
// needing the HTTP server up.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all registrations to a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		regs, err := repository.NewRegistrationsRepository(sqlDB).ListAll(context.Background())
		if err != nil {
			return fmt.Errorf("list registrations: %w", err)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer func() { _ = f.Close() }()

		if err := export.WriteCSV(f, regs); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}

		fmt.Printf(">> Wrote %d registrations to %s\n", len(regs), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "registrations.csv", "output file path")
}
