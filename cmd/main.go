package main

import (
	"os"

	"vidtube-api/app"

	"github.com/spf13/cobra"
)

// @title           VidTube API
// @version         1.0
// @description     Video sharing backend: users, videos, comments, likes, playlists, subscriptions, tweets and a channel dashboard.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "vidtube",
		Short:        "VidTube video sharing API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yml")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(configPath)
		},
	}

	var steps int
	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(configPath, args[0], steps)
		},
	}
	migrateCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back with down")

	root.AddCommand(serve, migrateCmd)
	return root
}
