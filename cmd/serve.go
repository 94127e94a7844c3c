/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"

	"github.com/masnyjimmy/blogapi/api"
	"github.com/masnyjimmy/blogapi/config"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog API server",
	Long: `Runs the HTTP server with the REST API under /api/v1, the generated
OpenAPI document under /api/schema/ and the documentation UIs under
/api/docs/ and /api/redoc/.`,
	Run: func(cmd *cobra.Command, _ []string) {
		settings, err := config.Load(configPath)

		if err != nil {
			log.Fatalf("Unable to load settings: %v", err)
		}

		server := api.NewServer(settings)

		log.Fatal(server.Run())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
