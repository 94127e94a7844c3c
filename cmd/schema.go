/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
	"github.com/masnyjimmy/blogapi/api"
	"github.com/masnyjimmy/blogapi/config"
	"github.com/masnyjimmy/blogapi/validation"
	"github.com/spf13/cobra"
)

const (
	FormatJSON = "openapi-json"
	FormatYAML = "openapi-yaml"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export or validate the generated OpenAPI schema",
	Long: `Generates the OpenAPI document from the configured route table and
writes it to a file or the console.

Examples:

  blogapi schema --file schema.yml
  blogapi schema --format openapi-json --file schema.json
  blogapi schema --validate
  blogapi schema --color`,
	Run: func(cmd *cobra.Command, _ []string) {
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")
		validate, _ := cmd.Flags().GetBool("validate")
		color, _ := cmd.Flags().GetBool("color")

		if res := ExportSchema(file, format, validate, color); res != 0 {
			os.Exit(res)
		}
	},
}

var errorLogger *log.Logger = log.New(os.Stderr, "Error ", log.Ltime)

func resolveFormat(file, format string) (string, error) {
	if format != "" {
		switch format {
		case FormatJSON, FormatYAML:
			return format, nil
		default:
			return "", fmt.Errorf("unknown format %q (expected %v or %v)", format, FormatJSON, FormatYAML)
		}
	}

	if filepath.Ext(file) == ".json" {
		return FormatJSON, nil
	}
	return FormatYAML, nil
}

func ExportSchema(file, format string, validate, color bool) int {

	settings, err := config.Load(configPath)

	if err != nil {
		errorLogger.Printf("Unable to load settings: %v", err)
		return 1
	}

	format, err = resolveFormat(file, format)

	if err != nil {
		errorLogger.Print(err)
		return 1
	}

	server := api.NewServer(settings)

	log.Print("Generating schema..")

	var document []byte

	switch format {
	case FormatJSON:
		document, err = server.SchemaJSON()
	case FormatYAML:
		document, err = server.SchemaYAML()
	}

	if err != nil {
		errorLogger.Printf("Schema generation failed: %v", err)
		return 2
	}

	if validate {
		log.Print("Validating schema..")

		switch format {
		case FormatJSON:
			err = validation.Validate(document)
		case FormatYAML:
			err = validation.ValidateYAML(document)
		}

		if err != nil {
			errorLogger.Printf("Validation failed: %v", err)
			return 3
		}

		log.Print("Schema is valid")
	}

	if file == "" {
		if color {
			document = colorize(document)
		}
		os.Stdout.Write(document)
		return 0
	}

	log.Printf("Writing to %v", file)

	if err := os.WriteFile(file, document, 0644); err != nil {
		errorLogger.Printf("Unable to write file %v: %v", file, err)
		return 4
	}

	log.Print("Finished succesfully :)")
	return 0
}

const escapeReset = "\x1b[0m"

func escapeColor(code int) string {
	return fmt.Sprintf("\x1b[%dm", code)
}

func colorProperty(code int) func() *printer.Property {
	return func() *printer.Property {
		return &printer.Property{
			Prefix: escapeColor(code),
			Suffix: escapeReset,
		}
	}
}

// colorize prints the document with syntax highlighting. JSON is a
// subset of YAML, so both export formats go through the YAML lexer.
func colorize(document []byte) []byte {
	tokens := lexer.Tokenize(string(document))

	var p printer.Printer
	p.MapKey = colorProperty(36) // cyan
	p.String = colorProperty(32) // green
	p.Number = colorProperty(35) // magenta
	p.Bool = colorProperty(33)   // yellow
	p.Anchor = colorProperty(31) // red
	p.Alias = colorProperty(31)  // red

	return []byte(p.PrintTokens(tokens) + "\n")
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringP("file", "f", "", "Output filepath, prints to the console when empty")
	schemaCmd.Flags().String("format", "", "Output format: openapi-json or openapi-yaml (default derived from --file extension)")
	schemaCmd.Flags().Bool("validate", false, "Validate the generated schema against the OpenAPI meta-schema")
	schemaCmd.Flags().Bool("color", false, "Syntax highlight console output")
	schemaCmd.MarkFlagFilename("file", "yaml", "yml", "json")
}
