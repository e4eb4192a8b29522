package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/patchworkgame-go/internal/services/catalog"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	// MatchFile remembers the last created match so match commands can omit the ID
	MatchFile string
	// Catalog is used to replay history files offline
	Catalog string
	Output  string
	Verbose bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("PATCHWORK_SERVER", "http://localhost:8080"),
		MatchFile: getEnvOrDefault("PATCHWORK_MATCH_FILE", defaultMatchFile()),
		Catalog:   getEnvOrDefault("PATCHWORK_CATALOG", catalog.NameClassic),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadMatchID reads the remembered match ID, returning "" when there is none
func (c *Config) LoadMatchID() (string, error) {
	data, err := os.ReadFile(c.MatchFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveMatchID remembers a match ID for later commands
func (c *Config) SaveMatchID(id string) error {
	dir := filepath.Dir(c.MatchFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.MatchFile, []byte(id), 0600)
}

// ResolveMatchID returns the explicit ID from args, or the remembered one
func (c *Config) ResolveMatchID(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	id, err := c.LoadMatchID()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("no match ID given and no remembered match; run 'patchwork match create' first")
	}
	return id, nil
}

func defaultMatchFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".patchwork/match"
	}
	return filepath.Join(home, ".patchwork", "match")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
