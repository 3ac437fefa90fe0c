package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"budget-recon/internal/logging"
	"budget-recon/internal/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirForTest(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ",", config.CSV.InputDelimiter)
	assert.Equal(t, tabular.DefaultEncodings, config.CSV.Encodings)
	assert.Equal(t, "Unimarket Export.csv", config.Inputs.Purchasing)
	assert.Equal(t, "YTD Banner Lines.csv", config.Inputs.Ledger)
	assert.Equal(t, "SupabaseBudgetExport.csv", config.Inputs.Tracking)
	assert.Equal(t, ".", config.Outputs.Directory)
	assert.Equal(t, "requisitions_grouped.csv", config.Outputs.Requisitions)
	assert.Equal(t, "banner_docs_grouped.csv", config.Outputs.LedgerDocs)
	assert.Equal(t, "requisition_banner_reconciled.csv", config.Outputs.Reconciled)
	assert.Equal(t, "review_needed.csv", config.Outputs.Review)
	assert.Equal(t, "", config.Outputs.Summary)
	assert.Equal(t, ',', config.DelimiterRune())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirForTest(t, t.TempDir())

	testEnvVars := map[string]string{
		"BUDGET_RECON_LOG_LEVEL":         "debug",
		"BUDGET_RECON_LOG_FORMAT":        "json",
		"BUDGET_RECON_CSV_DELIMITER":     ";",
		"BUDGET_RECON_INPUTS_LEDGER":     "ledger.csv",
		"BUDGET_RECON_OUTPUTS_DIRECTORY": "reports",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, ';', config.DelimiterRune())
	assert.Equal(t, "ledger.csv", config.Inputs.Ledger)
	assert.Equal(t, "reports", config.Outputs.Directory)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
  input_delimiter: "\t"
  encodings: ["cp1252", "utf-8"]
inputs:
  purchasing: "exports/unimarket.csv"
outputs:
  directory: "out"
  summary: "summary.yaml"
`
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600)
	require.NoError(t, err)
	chdirForTest(t, tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, '\t', config.InputDelimiterRune())
	assert.Equal(t, []string{"cp1252", "utf-8"}, config.CSV.Encodings)
	assert.Equal(t, "exports/unimarket.csv", config.Inputs.Purchasing)
	assert.Equal(t, "YTD Banner Lines.csv", config.Inputs.Ledger, "unset keys keep defaults")
	assert.Equal(t, filepath.Join("out", "summary.yaml"), config.SummaryFile())
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	chdirForTest(t, tempDir)

	path := filepath.Join(tempDir, "recon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outputs:\n  review: \"flagged.csv\"\n"), 0600))

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "flagged.csv", config.Outputs.Review)

	_, err = InitializeConfig(filepath.Join(tempDir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
`
	err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600)
	require.NoError(t, err)

	// Environment variables override the config file
	t.Setenv("BUDGET_RECON_LOG_LEVEL", "error")
	chdirForTest(t, tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter) // config file value
}

func validConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		CSV: CSVConfig{
			Delimiter:      ",",
			InputDelimiter: ",",
			Encodings:      []string{"utf-8-sig", "cp1252", "latin-1"},
		},
		Inputs: InputsConfig{
			Purchasing: DefaultPurchasingFile,
			Ledger:     DefaultLedgerFile,
			Tracking:   DefaultTrackingFile,
		},
		Outputs: OutputsConfig{
			Directory:    ".",
			Requisitions: DefaultRequisitionsFile,
			LedgerDocs:   DefaultLedgerDocsFile,
			Reconciled:   DefaultReconciledFile,
			Review:       DefaultReviewFile,
		},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "multi-character delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "delimiter must be a single character",
		},
		{
			name:         "quote as input delimiter",
			modifyConfig: func(c *Config) { c.CSV.InputDelimiter = `"` },
			expectError:  "CSV input delimiter",
		},
		{
			name:         "unknown encoding",
			modifyConfig: func(c *Config) { c.CSV.Encodings = []string{"utf-8", "ebcdic"} },
			expectError:  "unsupported encoding: ebcdic",
		},
		{
			name:         "no encodings",
			modifyConfig: func(c *Config) { c.CSV.Encodings = nil },
			expectError:  "csv.encodings is required",
		},
		{
			name:         "blank encoding",
			modifyConfig: func(c *Config) { c.CSV.Encodings = []string{""} },
			expectError:  "csv.encodings[0] is required",
		},
		{
			name:         "missing purchasing path",
			modifyConfig: func(c *Config) { c.Inputs.Purchasing = "" },
			expectError:  "inputs.purchasing is required",
		},
		{
			name:         "missing review output",
			modifyConfig: func(c *Config) { c.Outputs.Review = "" },
			expectError:  "outputs.review is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestOutputFiles(t *testing.T) {
	config := validConfig()
	config.Outputs.Directory = "reports"
	abs := filepath.Join(t.TempDir(), "review.csv")
	config.Outputs.Review = abs

	outputs := config.OutputFiles()
	assert.Equal(t, filepath.Join("reports", "requisitions_grouped.csv"), outputs.Requisitions)
	assert.Equal(t, filepath.Join("reports", "banner_docs_grouped.csv"), outputs.LedgerDocs)
	assert.Equal(t, filepath.Join("reports", "requisition_banner_reconciled.csv"), outputs.Reconciled)
	assert.Equal(t, abs, outputs.Review)
	assert.Equal(t, "", config.SummaryFile())
}

func TestConfigureLogging(t *testing.T) {
	config := validConfig()
	config.Log.Level = "debug"
	config.Log.Format = "json"

	var buf bytes.Buffer
	logger := ConfigureLogging(config, &buf)
	logger.Debug("configured", logging.F(logging.FieldCount, 3))

	assert.Contains(t, buf.String(), `"msg":"configured"`)
	assert.Contains(t, buf.String(), `"count":3`)
}

func TestLoadEnv(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	chdirForTest(t, tempDir)

	file, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "", file)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".env"), []byte("BUDGET_RECON_LOG_FORMAT=json\n"), 0600))

	file, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", file)
	assert.Equal(t, "json", os.Getenv("BUDGET_RECON_LOG_FORMAT"))
}

// clearTestEnvVars unsets every override for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"BUDGET_RECON_LOG_LEVEL",
		"BUDGET_RECON_LOG_FORMAT",
		"BUDGET_RECON_CSV_DELIMITER",
		"BUDGET_RECON_CSV_INPUT_DELIMITER",
		"BUDGET_RECON_CSV_ENCODINGS",
		"BUDGET_RECON_INPUTS_PURCHASING",
		"BUDGET_RECON_INPUTS_LEDGER",
		"BUDGET_RECON_INPUTS_TRACKING",
		"BUDGET_RECON_OUTPUTS_DIRECTORY",
		"BUDGET_RECON_OUTPUTS_REQUISITIONS",
		"BUDGET_RECON_OUTPUTS_LEDGER_DOCS",
		"BUDGET_RECON_OUTPUTS_RECONCILED",
		"BUDGET_RECON_OUTPUTS_REVIEW",
		"BUDGET_RECON_OUTPUTS_SUMMARY",
	}
	for _, envVar := range envVars {
		// Setenv registers restoration; Unsetenv then clears it.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}

// chdirForTest changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory %s: %v", old, err)
		}
	})
}
