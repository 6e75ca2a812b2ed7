package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/campuskart/config"
	"github.com/shashiranjanraj/campuskart/database/seeders"
	"github.com/shashiranjanraj/campuskart/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// campuskart seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB)
	},
}

// campuskart db:ping
var dbPingCmd = &cobra.Command{
	Use:   "db:ping",
	Short: "Check connectivity to MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Ping(ctx); err != nil {
			return err
		}
		fmt.Println("MongoDB is reachable.")
		return nil
	},
}
