package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/migrations"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

func main() {
	app := &cli.App{
		Name:  "db_migrations",
		Usage: "apply or roll back the finance-server schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "optional YAML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return run(c, func(m *migrate.Migrate) error { return m.Up() })
				},
			},
			{
				Name:  "down",
				Usage: "roll back the given number of migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1},
				},
				Action: func(c *cli.Context) error {
					return run(c, func(m *migrate.Migrate) error { return m.Steps(-c.Int("steps")) })
				},
			},
			{
				Name:  "version",
				Usage: "print the applied schema version",
				Action: func(c *cli.Context) error {
					return run(c, func(*migrate.Migrate) error { return nil })
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("db_migrations")
	}
}

func run(c *cli.Context, step func(*migrate.Migrate) error) error {
	env, err := server_config.Load(c.String("config"))
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", sqlconfig.ConnectionString(env.Postgres))
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := migrations.New(db)
	if err != nil {
		return err
	}

	preMigrationVersion, _, err := migrations.Version(m)
	if err != nil {
		return err
	}

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	postMigrationVersion, dirty, err := migrations.Version(m)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"command":              c.Command.Name,
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
		"dirty":                dirty,
	}).Info("Migration status")
	return nil
}
