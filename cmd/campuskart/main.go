package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import jobs so their init() funcs register the queue handlers.
	_ "github.com/shashiranjanraj/campuskart/app/jobs"
	// Import seeders so their init() funcs register themselves.
	_ "github.com/shashiranjanraj/campuskart/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "campuskart",
	Short: "CampusKart — campus marketplace CLI",
	Long:  "CampusKart is a hostel-to-hostel food marketplace. Use this CLI to run the server, workers and database tasks.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dbPingCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
