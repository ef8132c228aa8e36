package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OscarLawrence/UCP/internal/config"
	"github.com/OscarLawrence/UCP/internal/db"
	"github.com/OscarLawrence/UCP/internal/engine"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ucp init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEngine opens the pattern database under the configured data
// directory and builds the engine over it. The caller closes the DB.
func openEngine(cfg *config.Config) (*db.DB, *engine.Engine, error) {
	dbPath := filepath.Join(cfg.DataDir, "ucp.db")
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, engine.New(database, cfg.RetrievalK), nil
}

// readTextArg returns the input text: the joined arguments, or stdin when
// no arguments are given or the single argument is "-".
func readTextArg(args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no input text given")
	}
	return text, nil
}
