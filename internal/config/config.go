package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	DefaultEnvFile = ".env"
	DefaultPort    = "9191"
)

// Config is everything the server reads from flags and the environment.
type Config struct {
	Stage string
	Port  string

	// Postgres is used for snapshots and results only when DatabaseUrl is
	// set; otherwise both live in files.
	DatabaseUrl  string
	MigrationDir string
	SnapshotSlot string

	SnapshotPath string
	ResultsPath  string

	NoTouching bool
}

// LoadEnvFile loads path into the environment outside prod. A missing file
// is not an error.
func LoadEnvFile(stage, path string) error {
	if stage == StageProd {
		return nil
	}
	if path == "" {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Stage != StageDev && c.Stage != StageProd {
		return fmt.Errorf("stage must be either %s or %s, got %q", StageDev, StageProd, c.Stage)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port out of range: %d", port)
	}

	if c.UsesDatabase() {
		return nil
	}
	if c.SnapshotPath == "" || c.ResultsPath == "" {
		return errors.New("snapshot and results paths are required without a database")
	}
	return nil
}

func (c Config) UsesDatabase() bool {
	return c.DatabaseUrl != ""
}

func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
