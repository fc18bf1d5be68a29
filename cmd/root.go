/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the API server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "fullstack",
	Short: "User management REST service",
	Long: `A REST service that stores user records and serves a small
browser UI on top of them.

	fullstack            start the server
	fullstack migrate up apply postgres migrations
	fullstack watch      log user change events`,
	SilenceUsage: true,
	Run:          runServer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
