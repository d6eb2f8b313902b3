package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodeworks/lodestone/pkg/config"
	"github.com/lodeworks/lodestone/pkg/schema"
)

const testSchemaYAML = `name: pets
match: "pet_*.bin"
root:
  - name: pets
    kind: array
    elem:
      kind: record
      fields:
        - name: id
          kind: u32
        - name: name
          kind: string
`

// executeCommand runs the root command with the given args and captures output.
// Flag values persist on the command tree between executions, so the flags
// shared across tests are reset first.
func executeCommand(args ...string) (string, error) {
	_ = rootCmd.PersistentFlags().Set("config", "")
	_ = rootCmd.PersistentFlags().Set("schema-dir", "")
	_ = decodeCmd.Flags().Set("schema", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeTestCatalog writes a one-schema catalog plus a matching binary file
// and returns (schemaDir, binaryPath).
func writeTestCatalog(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := t.TempDir()

	schemaDir := filepath.Join(tmpDir, "schemas")
	require.NoError(t, os.MkdirAll(schemaDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "pets.yaml"), []byte(testSchemaYAML), 0644))

	doc := schema.Record{
		"pets": []any{
			schema.Record{"id": uint32(101), "name": "布布种子"},
			schema.Record{"id": uint32(102), "name": "伊优"},
		},
	}

	s := &schema.Schema{
		Name:  "pets",
		Match: "pet_*.bin",
		Root: []schema.Field{
			{Name: "pets", Kind: schema.KindArray, Elem: &schema.Field{
				Kind: schema.KindRecord,
				Fields: []schema.Field{
					{Name: "id", Kind: schema.KindU32},
					{Name: "name", Kind: schema.KindString},
				},
			}},
		},
	}
	buf, err := schema.EncodeDocument(doc, s)
	require.NoError(t, err)

	binPath := filepath.Join(tmpDir, "pet_config.bin")
	require.NoError(t, os.WriteFile(binPath, buf, 0644))
	return schemaDir, binPath
}

func TestDecodeCommand(t *testing.T) {
	schemaDir, binPath := writeTestCatalog(t)

	out, err := executeCommand("decode", "--schema-dir="+schemaDir, binPath)
	assert.NoError(t, err)
	assert.Contains(t, out, "布布种子")
	assert.Contains(t, out, `"id": 101`)
}

func TestDecodeCommand_ExplicitSchema(t *testing.T) {
	schemaDir, binPath := writeTestCatalog(t)

	// Rename so the pattern no longer matches; --schema must still work.
	renamed := filepath.Join(filepath.Dir(binPath), "mystery.bin")
	require.NoError(t, os.Rename(binPath, renamed))

	out, err := executeCommand("decode", "--schema-dir="+schemaDir, "--schema=pets", renamed)
	assert.NoError(t, err)
	assert.Contains(t, out, "伊优")
}

func TestDecodeCommand_NoMatch(t *testing.T) {
	schemaDir, binPath := writeTestCatalog(t)

	renamed := filepath.Join(filepath.Dir(binPath), "mystery.bin")
	require.NoError(t, os.Rename(binPath, renamed))

	_, err := executeCommand("decode", "--schema-dir="+schemaDir, renamed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no schema matches")
}

func TestSchemasListCommand(t *testing.T) {
	schemaDir, _ := writeTestCatalog(t)

	out, err := executeCommand("schemas", "list", "--schema-dir="+schemaDir)
	assert.NoError(t, err)
	assert.Contains(t, out, "pets")
	assert.Contains(t, out, "pet_*.bin")
}

func TestSchemasValidateCommand(t *testing.T) {
	schemaDir, _ := writeTestCatalog(t)

	out, err := executeCommand("schemas", "validate", "--schema-dir="+schemaDir)
	assert.NoError(t, err)
	assert.Contains(t, out, "1 schema(s) valid")
}

func TestSchemasValidateCommand_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	bad := "name: broken\nmatch: \"*.bin\"\nroot:\n  - name: x\n    kind: nope\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "broken.yaml"), []byte(bad), 0644))

	_, err := executeCommand("schemas", "validate", "--schema-dir="+tmpDir)
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	out, err := executeCommand("init", "--config="+configPath)
	assert.NoError(t, err)
	assert.Contains(t, out, "configuration created")
	assert.FileExists(t, configPath)

	cfg, err := config.LoadConfig(configPath)
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Security.APIKey)
	assert.NotEqual(t, "auto", cfg.Security.APIKey)

	// Second run without --force must refuse to overwrite.
	out, err = executeCommand("init", "--config="+configPath)
	assert.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestMineCommand(t *testing.T) {
	schemaDir, binPath := writeTestCatalog(t)
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	out, err := executeCommand("mine",
		"--schema-dir="+schemaDir,
		"--input-dir="+filepath.Dir(binPath),
		"--data-dir="+dataDir,
	)
	assert.NoError(t, err)
	assert.Contains(t, out, "Decoded:  1")
	assert.Contains(t, out, "Changed:  1")

	// Re-mining the same files creates no new versions.
	out, err = executeCommand("mine",
		"--schema-dir="+schemaDir,
		"--input-dir="+filepath.Dir(binPath),
		"--data-dir="+dataDir,
	)
	assert.NoError(t, err)
	assert.Contains(t, out, "Changed:  0")
}
