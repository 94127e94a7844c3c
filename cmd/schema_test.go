/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masnyjimmy/blogapi/validation"
)

func TestResolveFormat(t *testing.T) {
	format, err := resolveFormat("schema.json", "")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = resolveFormat("schema.yml", "")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	format, err = resolveFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	// an explicit format wins over the file extension
	format, err = resolveFormat("schema.json", FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	_, err = resolveFormat("", "toml")
	assert.Error(t, err)
}

func TestExportSchemaWritesValidatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "schema.json")

	res := ExportSchema(file, "", true, false)
	require.Equal(t, 0, res)

	document, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NoError(t, validation.Validate(document))
}

func TestExportSchemaYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "schema.yml")

	res := ExportSchema(file, "", true, false)
	require.Equal(t, 0, res)

	document, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NoError(t, validation.ValidateYAML(document))
	assert.Contains(t, string(document), "openapi: 3.0.3")
}

func TestExportSchemaUnknownFormat(t *testing.T) {
	res := ExportSchema("", "toml", false, false)
	assert.Equal(t, 1, res)
}

func TestColorize(t *testing.T) {
	out := string(colorize([]byte("openapi: 3.0.3\n")))

	assert.Contains(t, out, "\x1b[36m") // highlighted map key
	assert.Contains(t, out, escapeReset)
	assert.True(t, strings.HasSuffix(out, "\n"))
}
