package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studybuddy/core/cmd/studybuddy/commands"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// @title StudyBuddy API
// @version 2.0
// @description Notes, timetable, todos and AI study assistant backend

// @contact.name StudyBuddy
// @contact.url https://github.com/studybuddy/core

// @license.name MIT

// @host localhost:8003
// @BasePath /api/v1

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "studybuddy",
		Short:        "StudyBuddy API Server",
		Long:         `StudyBuddy keeps course notes, a weekly class timetable and todo lists, and forwards document extraction, note generation and chat to an AI backend.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (or STUDYBUDDY_CONFIG)")

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand(&configFile))
	rootCmd.AddCommand(commands.NewMigrateCommand(&configFile))
	rootCmd.AddCommand(commands.NewTimetableCommand(&configFile))
	rootCmd.AddCommand(commands.NewVersionCommand(version))

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
