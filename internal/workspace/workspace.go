// Package workspace locates the .teco data directory and wires the
// store, configuration and logger that commands and the TUI share.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/logging"
	"github.com/pablasso/teco/internal/store"
)

// ErrNotInitialized is returned when no .teco directory is found.
var ErrNotInitialized = errors.New("teco is not initialized. Run 'teco init' first")

// Workspace is an opened .teco directory.
type Workspace struct {
	Root    string
	DataDir string
	Store   *store.Store
	Config  *config.Config
	Logger  *logging.Logger
}

// FindRoot walks up from dir looking for a .teco directory and returns
// the directory that contains it.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, store.DirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialized
		}
		dir = parent
	}
}

// Open finds the workspace above dir and loads its config and logger.
func Open(dir string) (*Workspace, error) {
	root, err := FindRoot(dir)
	if err != nil {
		return nil, err
	}
	dataDir := filepath.Join(root, store.DirName)

	cfg, err := LoadConfig(dataDir)
	if err != nil {
		return nil, err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(filepath.Join(dataDir, "logs"), cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
	}

	return &Workspace{
		Root:    root,
		DataDir: dataDir,
		Store:   store.New(dataDir),
		Config:  cfg,
		Logger:  logger,
	}, nil
}

// LoadConfig resets viper, registers defaults and TECO_* env overrides,
// and reads dataDir/config.yaml when present. An empty dataDir loads
// defaults and env only.
func LoadConfig(dataDir string) (*config.Config, error) {
	viper.Reset()
	config.SetDefaults()

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if dataDir != "" {
		path := config.Path(dataDir)
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
		}
	}

	return config.Load()
}

// Close releases the logger.
func (w *Workspace) Close() error {
	return w.Logger.Close()
}
