/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blogapi",
	Short: "Blog REST API with self-generated OpenAPI documentation",
	Long: `Blog REST API with posts, comments and JWT authentication.

The OpenAPI document is generated from the registered routes and served
together with Swagger UI and ReDoc. The schema command exports the same
document to a file or the console and can validate it against the
OpenAPI meta-schema.`,
}

var configPath string

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is ./blogapi.yaml)")
}
