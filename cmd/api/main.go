package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/examtrack/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "examtrack",
		Short: "ExamTrack API Server",
		Long:  `ExamTrack is a personal exam-preparation tracker: courses, lecture notes, practice exams, and a daily workload schedule that stays frozen for the day.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
