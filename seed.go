package main

import (
	"github.com/spf13/cobra"

	"github.com/msomdec/newsdesk/internal/repository/sqlstore"
	"github.com/msomdec/newsdesk/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and fill empty reference tables",
	Long: `seed applies pending migrations and inserts the default genders,
statuses and tags into tables that are still empty. When DEMO_PASSWORD is
set it also creates the demo account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrateUp(cmd.Context(), db); err != nil {
			return err
		}

		users := sqlstore.NewUserRepository(db)
		seeder := service.NewSeeder(
			sqlstore.NewGenderRepository(db),
			sqlstore.NewStatusRepository(db),
			sqlstore.NewTagRepository(db),
			users,
			service.NewPasswordHasher(cfg.Auth.BcryptCost),
		)
		return seeder.Seed(cmd.Context(), service.SeedOptions{DemoPassword: cfg.Seed.DemoPassword})
	},
}
