// Package config loads the application configuration from an optional YAML
// file with environment-variable overrides, and opens the database.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	// DatabaseURL selects postgres when set; otherwise DatabasePath names
	// a local sqlite file.
	DatabaseURL  string `yaml:"database_url"`
	DatabasePath string `yaml:"database_path"`

	// DownloadDir is where cached files live.
	DownloadDir string `yaml:"download_dir"`

	// DatatrackerURL and RFCIndexURL override the production endpoints,
	// mainly for tests.
	DatatrackerURL string `yaml:"datatracker_url"`
	RFCIndexURL    string `yaml:"rfc_index_url"`

	// RefreshCron schedules the daemon's periodic schedule refresh.
	RefreshCron string `yaml:"refresh_cron"`
}

// LoadConfig reads the config file (IETFMEET_CONFIG or ~/.config/ietfmeet/
// config.yaml), applies env overrides, and fills defaults. A missing file is
// not an error; the defaults stand.
func LoadConfig() *Config {
	cnf := &Config{}

	path := os.Getenv("IETFMEET_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "ietfmeet", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cnf); err != nil {
				logrus.Errorf("parse config %s: %v", path, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			logrus.Errorf("read config %s: %v", path, err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cnf.DatabaseURL = v
	}
	if v := os.Getenv("IETFMEET_DB"); v != "" {
		cnf.DatabasePath = v
	}
	if v := os.Getenv("IETFMEET_DOWNLOAD_DIR"); v != "" {
		cnf.DownloadDir = v
	}

	if cnf.DatabasePath == "" {
		cnf.DatabasePath = defaultDataPath("ietfmeet.db")
	}
	if cnf.DownloadDir == "" {
		cnf.DownloadDir = defaultDataPath("downloads")
	}
	if cnf.RefreshCron == "" {
		cnf.RefreshCron = "@every 15m"
	}

	return cnf
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "ietfmeet", name)
}

// GetDb opens the configured database: postgres when DatabaseURL is set,
// a local sqlite file otherwise.
func GetDb(cnf *Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	if cnf.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cnf.DatabaseURL), &gorm.Config{})
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(cnf.DatabasePath), 0o755); mkErr != nil {
			logrus.Fatalf("create data dir: %v", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(cnf.DatabasePath), &gorm.Config{})
	}
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	return db
}
