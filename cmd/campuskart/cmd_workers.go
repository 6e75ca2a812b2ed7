package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/campuskart/internal/server"
	"github.com/shashiranjanraj/campuskart/pkg/cache"
	"github.com/shashiranjanraj/campuskart/pkg/database"
	"github.com/shashiranjanraj/campuskart/pkg/queue"
	"github.com/shashiranjanraj/campuskart/pkg/schedule"
)

var queueWorkersFlag int

// bootQueue connects the stores the workers need: redis for the job stream,
// mongo for the failed-jobs collection.
func bootQueue() error {
	if err := bootDB(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	queue.UseCollection(database.Collection("failed_jobs"))
	return nil
}

// campuskart queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootQueue(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("🚀 Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\n⚡ Queue worker stopped.")
		return nil
	},
}

// campuskart schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		server.RegisterSchedule()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
		} else {
			fmt.Println("Registered scheduled tasks:")
			for _, t := range tasks {
				fmt.Println("  •", t)
			}
		}

		fmt.Println("🕐 Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		fmt.Println("\n⚡ Scheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
