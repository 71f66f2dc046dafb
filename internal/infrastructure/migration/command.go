// Package migration applies the embedded schema with golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"collections-backend/migrations"
)

// Source opens the SQL files compiled into the binary.
func Source() (source.Driver, error) {
	return iofs.New(migrations.FS, ".")
}

func newMigrate(dsn string) (*migrate.Migrate, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
}

func closeMigrate(m *migrate.Migrate) {
	_, _ = m.Close()
}

// ignoreNoChange treats an already-current schema as success.
func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// MigrateCommand builds the CLI. dsn must allow multi statements.
func MigrateCommand(dsn string) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the collections schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := newMigrate(dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)
			if err := ignoreNoChange(m.Up()); err != nil {
				return err
			}
			return printVersion(cmd, m)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the given number of migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			m, err := newMigrate(dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)
			if err := ignoreNoChange(m.Steps(-steps)); err != nil {
				return err
			}
			return printVersion(cmd, m)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Set the version without running migrations, clearing the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			m, err := newMigrate(dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)
			if err := m.Force(v); err != nil {
				return err
			}
			return printVersion(cmd, m)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := newMigrate(dsn)
			if err != nil {
				return err
			}
			defer closeMigrate(m)
			return printVersion(cmd, m)
		},
	})

	return root
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return n, nil
}

func printVersion(cmd *cobra.Command, m *migrate.Migrate) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(cmd.OutOrStdout(), "version: none")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version: %d dirty: %t\n", v, dirty)
	return nil
}
