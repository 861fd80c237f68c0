package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DataSource string

const (
	DataSourceFake DataSource = "fake"
	DataSourceReal DataSource = "real"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Flowcase FlowcaseConfig `mapstructure:"flowcase"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN renders a keyword/value connection string accepted by both the gorm
// postgres driver and goose's pgx driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		d.Host, d.Port, d.Name, d.User, d.Password,
	)
}

type PipelineConfig struct {
	DataSource    DataSource `mapstructure:"data_source"`
	ReportsDir    string     `mapstructure:"reports_dir"`
	MigrationsDir string     `mapstructure:"migrations_dir"`
}

type FlowcaseConfig struct {
	Subdomain  string   `mapstructure:"subdomain"`
	APIToken   string   `mapstructure:"api_token"`
	OfficeIDs  []string `mapstructure:"office_ids"`
	LangParams []string `mapstructure:"lang_params"`
}

type LoggingConfig struct {
	Env string `mapstructure:"env"`
}

// LoadConfigFromEnv builds a Config from environment variables only, the
// deployment path where no config.yml is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:            os.Getenv("PGHOST"),
			Port:            getEnvAsInt("PGPORT", 5432),
			Name:            os.Getenv("PGDATABASE"),
			User:            os.Getenv("PGUSER"),
			Password:        os.Getenv("PGPASSWORD"),
			MaxOpenConns:    getEnvAsInt("PGMAXOPENCONNS", 5),
			MaxIdleConns:    getEnvAsInt("PGMAXIDLECONNS", 2),
			ConnMaxLifetime: 30 * time.Minute,
		},
		Pipeline: PipelineConfig{
			DataSource:    DataSource(strings.ToLower(getEnv("FLOWCASE_DATA_SOURCE", string(DataSourceFake)))),
			ReportsDir:    getEnv("CV_REPORTS_DIR", "cv_reports"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "db/migrations"),
		},
		Flowcase: FlowcaseConfig{
			Subdomain:  os.Getenv("FLOWCASE_SUBDOMAIN"),
			APIToken:   os.Getenv("FLOWCASE_API_TOKEN"),
			OfficeIDs:  splitEnvList(os.Getenv("FLOWCASE_OFFICE_IDS")),
			LangParams: splitEnvList(os.Getenv("FLOWCASE_LANG_PARAMS")),
		},
		Logging: LoggingConfig{
			Env: getEnv("APP_ENV", "development"),
		},
	}
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "PGHOST")
	}
	if c.Database.Name == "" {
		missing = append(missing, "PGDATABASE")
	}
	if c.Database.User == "" {
		missing = append(missing, "PGUSER")
	}
	if c.Database.Password == "" {
		missing = append(missing, "PGPASSWORD")
	}
	if len(missing) > 0 {
		return NewValidationError(
			fmt.Sprintf("missing required database configuration: %s", strings.Join(missing, ", ")),
			ErrCodeConfigMissing,
		)
	}

	switch c.Pipeline.DataSource {
	case DataSourceFake, DataSourceReal:
	default:
		return NewValidationError(
			fmt.Sprintf("invalid data source %q (want fake or real)", c.Pipeline.DataSource),
			ErrCodeConfigMissing,
		)
	}

	if c.Pipeline.DataSource == DataSourceReal {
		if c.Flowcase.Subdomain == "" || c.Flowcase.APIToken == "" {
			return NewValidationError(
				"data source is real but FLOWCASE_SUBDOMAIN or FLOWCASE_API_TOKEN is not set",
				ErrCodeConfigMissing,
			)
		}
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func splitEnvList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
