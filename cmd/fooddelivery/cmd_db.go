package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vyshnav-v/food-delivery/config"
	"github.com/vyshnav-v/food-delivery/database/seeders"
	"github.com/vyshnav-v/food-delivery/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	config.Load()
	return database.Connect(ctx)
}

// fooddelivery db:indexes: creates all collection indexes.
var dbIndexCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the collection indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		fmt.Println("Creating indexes…")
		if err := database.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}

// fooddelivery db:seed: runs all registered seeders.
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the initial admin account and starter categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		return seeders.RunAll(ctx, database.DB())
	},
}
