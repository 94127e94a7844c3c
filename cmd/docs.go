/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/blogapi/swagger"
	"github.com/masnyjimmy/blogapi/validation"
	"github.com/spf13/cobra"
)

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Serve an exported schema file with Swagger UI and ReDoc",
	Long: `Serves a previously exported OpenAPI schema file with Swagger UI at /
and ReDoc at /redoc. The file is watched for changes and open pages
reload automatically.`,
	Run: func(cmd *cobra.Command, _ []string) {
		input, err := cmd.Flags().GetString("file")
		if err != nil {
			panic(err)
		}
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			panic(err)
		}
		ServeDocs(input, addr)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringP("file", "f", "schema.yml", "OpenAPI schema file to serve and watch")
	docsCmd.Flags().String("addr", ":8081", "Listen address")
}

/*
When the file updates
1. read bytes
2. validate against the meta-schema
3. convert to JSON for the UIs
*/
func readSchemaFile(filename string) ([]byte, error) {

	bytes, err := os.ReadFile(filename)

	if err != nil {
		return nil, fmt.Errorf("Unable to read file: %w", err)
	}

	if filepath.Ext(filename) == ".json" {
		if err := validation.Validate(bytes); err != nil {
			return nil, fmt.Errorf("Validation error: %w", err)
		}
		return bytes, nil
	}

	if err := validation.ValidateYAML(bytes); err != nil {
		return nil, fmt.Errorf("Validation error: %w", err)
	}

	var document any

	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return nil, fmt.Errorf("Unable to parse document: %w", err)
	}

	jsonBytes, err := json.Marshal(document)

	if err != nil {
		return nil, fmt.Errorf("Unable to convert document: %w", err)
	}

	return jsonBytes, nil
}

func ServeDocs(input, addr string) {

	document, err := readSchemaFile(input)

	if err != nil {
		log.Fatal(err)
	}

	server := swagger.NewDocServer("API Documentation", document, "/")

	watcher, err := swagger.WatchFile(input, swagger.DEFAULT_DEBOUNCE_TIME)

	if err != nil {
		log.Printf("Unable to watch for file updates: %v", err)
	} else {
		watchHandler := func() {
			for err := range watcher.Update {
				if err != nil {
					log.Print(err)
					continue
				}

				bytes, err := readSchemaFile(input)
				if err != nil {
					log.Printf("Unable to update schema: %v", err)
					continue
				}

				server.SetDocument(bytes)
			}
		}
		go watchHandler()
	}

	log.Printf("Started docs server at http://localhost%v", addr)
	log.Fatal(http.ListenAndServe(addr, server.Handler()))
}
