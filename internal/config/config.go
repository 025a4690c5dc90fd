package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// Row source backend names accepted in dataset definitions.
const (
	BackendCSV    = "csv"
	BackendSheets = "sheets"
	BackendXLSX   = "xlsx"
	BackendMongo  = "mongo"
)

const publishedSheetBase = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSFLGioCUdZbAR_v2KaInBD_GVts9csvUr4Mzz6s5_p1YSAcLPPRg16bnO-9s5UKjb_rqECjzMqAGgd/pub"

var defaultSources = map[models.DatasetKind]string{
	models.DatasetProfiles:   BackendCSV + ":" + publishedSheetBase + "?gid=249634938&single=true&output=csv",
	models.DatasetExpenses:   BackendCSV + ":" + publishedSheetBase + "?gid=1547099893&single=true&output=csv",
	models.DatasetProduction: BackendCSV + ":" + publishedSheetBase + "?gid=2081043536&single=true&output=csv",
}

var sourceEnvKeys = map[models.DatasetKind]string{
	models.DatasetProfiles:   "PROFILES_SOURCE",
	models.DatasetExpenses:   "EXPENSES_SOURCE",
	models.DatasetProduction: "PRODUCTION_SOURCE",
}

// Config represents the full application configuration surface.
type Config struct {
	LogLevel string
	Server   ServerConfig
	Datasets map[models.DatasetKind]DatasetSource
	Fetch    FetchConfig
	Sessions SessionConfig
	Sheets   SheetsConfig
	MongoDB  MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatasetSource tells the catalog where one dataset lives.
type DatasetSource struct {
	Backend  string `yaml:"backend"`
	Location string `yaml:"location"`
}

// FetchConfig bounds remote dataset downloads.
type FetchConfig struct {
	Timeout time.Duration
}

// SessionConfig controls dashboard session lifetime.
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepSchedule string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

type catalogFile struct {
	Datasets map[string]DatasetSource `yaml:"datasets"`
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	fetchTimeout, err := getDurationWithDefault("FETCH_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getDurationWithDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Datasets: make(map[models.DatasetKind]DatasetSource, len(models.DatasetKinds)),
		Fetch: FetchConfig{
			Timeout: fetchTimeout,
		},
		Sessions: SessionConfig{
			IdleTimeout:   idleTimeout,
			SweepSchedule: getenvWithDefault("SESSION_SWEEP_SCHEDULE", "*/5 * * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmer"),
		},
	}

	for _, kind := range models.DatasetKinds {
		src, err := ParseDatasetSource(getenvWithDefault(sourceEnvKeys[kind], defaultSources[kind]))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sourceEnvKeys[kind], err)
		}
		cfg.Datasets[kind] = src
	}

	if path := os.Getenv("DATASETS_FILE"); path != "" {
		if err := cfg.applyCatalogFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseDatasetSource reads the "backend:location" form used in env variables.
func ParseDatasetSource(value string) (DatasetSource, error) {
	backend, location, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || backend == "" || strings.TrimSpace(location) == "" {
		return DatasetSource{}, fmt.Errorf("dataset source %q must look like backend:location", value)
	}
	return DatasetSource{Backend: strings.ToLower(backend), Location: strings.TrimSpace(location)}, nil
}

func (c *Config) applyCatalogFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed reading datasets file %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed parsing datasets file %s: %w", path, err)
	}

	for name, src := range file.Datasets {
		kind, err := models.ParseDatasetKind(name)
		if err != nil {
			return fmt.Errorf("datasets file %s: %w", path, err)
		}
		src.Backend = strings.ToLower(strings.TrimSpace(src.Backend))
		src.Location = strings.TrimSpace(src.Location)
		c.Datasets[kind] = src
	}
	return nil
}

// UsesBackend reports whether any dataset is served by backend.
func (c *Config) UsesBackend(backend string) bool {
	for _, src := range c.Datasets {
		if src.Backend == backend {
			return true
		}
	}
	return false
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	for _, kind := range models.DatasetKinds {
		src, ok := c.Datasets[kind]
		if !ok {
			return fmt.Errorf("no source configured for dataset %s", kind)
		}
		switch src.Backend {
		case BackendCSV, BackendSheets, BackendXLSX, BackendMongo:
		default:
			return fmt.Errorf("dataset %s uses unsupported backend %q", kind, src.Backend)
		}
		if src.Location == "" {
			return fmt.Errorf("dataset %s must have a location", kind)
		}
	}

	if c.UsesBackend(BackendSheets) {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
		}
	}

	if c.UsesBackend(BackendMongo) {
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}

	if c.Sessions.IdleTimeout <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must be positive")
	}

	if _, err := cron.ParseStandard(c.Sessions.SweepSchedule); err != nil {
		return fmt.Errorf("SESSION_SWEEP_SCHEDULE is invalid: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a duration: %w", key, err)
	}
	return d, nil
}
