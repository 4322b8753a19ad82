// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/analytics"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/mock"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	// EnvFile is the .env file that was loaded, empty when none was found.
	EnvFile string

	Seed          uint64
	Records       int
	StartDate     time.Time
	EndDate       time.Time
	Team          []string
	HistogramBins int

	ExportDir   string
	LogPath     string
	LogLevel    string
	WatchConfig bool

	// Overrides are the command-line values that win over the env file.
	Overrides Overrides
}

// Overrides holds values set on the command line. Nil fields were not given.
type Overrides struct {
	Seed    *uint64
	Records *int
}

// Apply writes the set overrides into c and remembers them so reloads can
// re-apply them.
func (c *Config) Apply(o Overrides) {
	c.Overrides = o
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.Records != nil {
		c.Records = *o.Records
	}
}

// Range returns the configured generation window.
func (c *Config) Range() models.DateRange {
	return models.NewDateRange(c.StartDate, c.EndDate)
}

// fileKeys are the variables the last Load or Reload took from the .env file.
var (
	fileKeysMu sync.Mutex
	fileKeys   = map[string]struct{}{}
)

// Load reads configuration from .env files and environment variables.
// Variables already set in the process environment win over the file.
func Load() (*Config, error) {
	var envFile string
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := applyEnvFile(path, false); err != nil {
				return nil, err
			}
			envFile = path
			break
		}
	}

	return fromEnv(envFile)
}

// Reload re-reads the given .env file, letting its values replace the current
// environment, and rebuilds the configuration. Keys deleted from the file
// since the last read are unset. Overrides from prev are re-applied.
func Reload(envFile string, prev Overrides) (*Config, error) {
	if envFile != "" {
		if err := applyEnvFile(envFile, true); err != nil {
			return nil, err
		}
	}
	cfg, err := fromEnv(envFile)
	if err != nil {
		return nil, err
	}
	cfg.Apply(prev)
	return cfg, nil
}

// applyEnvFile exports the file's variables. With overwrite false, variables
// already present in the environment are left alone and not tracked.
func applyEnvFile(path string, overwrite bool) error {
	vals, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fileKeysMu.Lock()
	defer fileKeysMu.Unlock()

	if overwrite {
		for key := range fileKeys {
			if _, ok := vals[key]; !ok {
				_ = os.Unsetenv(key)
				delete(fileKeys, key)
			}
		}
	}

	for key, val := range vals {
		if _, set := os.LookupEnv(key); set && !overwrite {
			continue
		}
		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		fileKeys[key] = struct{}{}
	}
	return nil
}

func fromEnv(envFile string) (*Config, error) {
	start, err := getEnvDate("KPI_START_DATE", mock.DefaultStart)
	if err != nil {
		return nil, err
	}
	end, err := getEnvDate("KPI_END_DATE", mock.DefaultEnd)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("KPI_START_DATE %s is after KPI_END_DATE %s",
			start.Format(models.DateLayout), end.Format(models.DateLayout))
	}

	cfg := &Config{
		EnvFile:       envFile,
		Seed:          getEnvUint("KPI_SEED", mock.DefaultSeed),
		Records:       getEnvInt("KPI_RECORDS", mock.DefaultRecords),
		StartDate:     start,
		EndDate:       end,
		Team:          getEnvList("KPI_TEAM", mock.DefaultTeam),
		HistogramBins: getEnvInt("KPI_HISTOGRAM_BINS", analytics.DefaultHistogramBins),
		ExportDir:     getEnvString("EXPORT_DIR", getDefaultExportDir()),
		LogPath:       getEnvString("LOG_PATH", getDefaultLogPath()),
		LogLevel:      strings.ToLower(getEnvString("LOG_LEVEL", "info")),
		WatchConfig:   getEnvBool("KPI_WATCH_CONFIG", true),
	}

	if cfg.Records <= 0 {
		cfg.Records = mock.DefaultRecords
	}
	if cfg.HistogramBins <= 0 {
		cfg.HistogramBins = analytics.DefaultHistogramBins
	}

	// Ensure log directory exists
	if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "opskpi", ".env"),
			filepath.Join(home, ".opskpi", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultExportDir returns the default directory for exported charts and workbooks.
func getDefaultExportDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "exports"
	}
	return filepath.Join(cwd, "exports")
}

// getDefaultLogPath returns the default log file used while the TUI owns the terminal.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "opskpi.log"
	}
	return filepath.Join(home, ".config", "opskpi", "opskpi.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvUint retrieves an unsigned integer environment variable or returns the default.
func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList retrieves a comma-separated list, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return items
}

// getEnvDate retrieves a YYYY-MM-DD environment variable. Unlike the other
// helpers a malformed value is an error, since it changes what data is generated.
func getEnvDate(key string, defaultValue time.Time) (time.Time, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
