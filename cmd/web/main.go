package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"archiveweb/internal/config"
	"archiveweb/internal/database"
	"archiveweb/internal/database/migration"
	"archiveweb/internal/logging"
)

func main() {
	cmd := &cli.Command{
		Name:   "archiveweb",
		Usage:  "Server-rendered frontend for the Eunpyeong document archive",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP listen port (overrides PORT)",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Archive backend base URL (overrides API_BASE_URL)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the report tables and exit",
				Action: migrate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "archiveweb:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cli.Command) (*config.AppConfig, error) {
	cfg := config.Load()
	if v := cmd.String("port"); v != "" {
		cfg.Port = v
	}
	if v := cmd.String("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("db_host", cfg.Database.Host))
	return nil
}
