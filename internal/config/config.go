package config

import (
	"io"
	"os"
	"path/filepath"

	"budget-recon/internal/logging"
	"budget-recon/internal/models"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are kept. It
// returns the file it loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return envFile, err
		}
		return envFile, nil
	}
	return "", nil
}

// ConfigureLogging builds the application logger from the log section,
// writing to out (stderr when nil).
func ConfigureLogging(config *Config, out io.Writer) logging.Logger {
	return logging.NewLogrusAdapterWithOutput(config.Log.Level, config.Log.Format, out)
}

// OutputFiles resolves the report names against outputs.directory.
// Absolute names are used as given.
func (c *Config) OutputFiles() models.OutputFiles {
	return models.OutputFiles{
		Requisitions: c.outputPath(c.Outputs.Requisitions),
		LedgerDocs:   c.outputPath(c.Outputs.LedgerDocs),
		Reconciled:   c.outputPath(c.Outputs.Reconciled),
		Review:       c.outputPath(c.Outputs.Review),
	}
}

// SummaryFile resolves outputs.summary, or returns "" when it is unset.
func (c *Config) SummaryFile() string {
	if c.Outputs.Summary == "" {
		return ""
	}
	return c.outputPath(c.Outputs.Summary)
}

func (c *Config) outputPath(name string) string {
	if filepath.IsAbs(name) || c.Outputs.Directory == "" {
		return name
	}
	return filepath.Join(c.Outputs.Directory, name)
}
