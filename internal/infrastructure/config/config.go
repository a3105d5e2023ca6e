package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Security  SecurityConfig  `mapstructure:"security"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	AIBackend AIBackendConfig `mapstructure:"ai_backend"`
	Timetable TimetableConfig `mapstructure:"timetable"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BodyLimit      string        `mapstructure:"body_limit"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// AIBackendConfig points at the external service that extracts documents,
// generates notes, answers chat messages and exports documents.
type AIBackendConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	DefaultModel string        `mapstructure:"default_model"`
	HistoryLimit int           `mapstructure:"history_limit"`
}

// TimetableConfig controls the week grid and calendar export
type TimetableConfig struct {
	FirstHour     int    `mapstructure:"first_hour"`
	LastHour      int    `mapstructure:"last_hour"`
	Timezone      string `mapstructure:"timezone"`
	SemesterStart string `mapstructure:"semester_start"`
	SemesterWeeks int    `mapstructure:"semester_weeks"`
}

// SchedulerConfig holds background job schedules
type SchedulerConfig struct {
	Enabled                bool          `mapstructure:"enabled"`
	AgendaSpec             string        `mapstructure:"agenda_spec"`
	RetentionSpec          string        `mapstructure:"retention_spec"`
	CompletedTodoRetention time.Duration `mapstructure:"completed_todo_retention"`
}

// ExportConfig selects how notes are rendered to PDF
type ExportConfig struct {
	Renderer      string        `mapstructure:"renderer"`
	RenderTimeout time.Duration `mapstructure:"render_timeout"`
}

// Load loads configuration from various sources. configFile may be empty.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if configFile == "" {
		configFile = v.GetString("config_file")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "StudyBuddy")
	v.SetDefault("app.version", "2.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.port", 8003)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "90s")
	v.SetDefault("server.body_limit", "25M")

	// Database defaults
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "studybuddy.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "studybuddy")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "30s")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.filename", "")

	// Security defaults
	v.SetDefault("security.cors_allowed_origins", "*")
	v.SetDefault("security.rate_limit_requests", 100)
	v.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)

	// AI backend defaults
	v.SetDefault("ai_backend.base_url", "http://localhost:8004")
	v.SetDefault("ai_backend.timeout", "120s")
	v.SetDefault("ai_backend.default_model", "gemini-2.5-flash")
	v.SetDefault("ai_backend.history_limit", 10)

	// Timetable defaults
	v.SetDefault("timetable.first_hour", 8)
	v.SetDefault("timetable.last_hour", 20)
	v.SetDefault("timetable.timezone", "Local")
	v.SetDefault("timetable.semester_start", "")
	v.SetDefault("timetable.semester_weeks", 16)

	// Scheduler defaults
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.agenda_spec", "0 7 * * *")
	v.SetDefault("scheduler.retention_spec", "30 3 * * *")
	v.SetDefault("scheduler.completed_todo_retention", "0s")

	// Export defaults
	v.SetDefault("export.renderer", "backend")
	v.SetDefault("export.render_timeout", "30s")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("config_file", "STUDYBUDDY_CONFIG")

	// App
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.version", "APP_VERSION")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("app.debug", "APP_DEBUG")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	v.BindEnv("server.request_timeout", "SERVER_REQUEST_TIMEOUT")
	v.BindEnv("server.body_limit", "SERVER_BODY_LIMIT")

	// Database
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.path", "DB_PATH")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.ssl_mode", "DB_SSL_MODE")
	v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	v.BindEnv("database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	v.BindEnv("database.conn_max_idle_time", "DB_CONN_MAX_IDLE_TIME")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.format", "LOG_FORMAT")
	v.BindEnv("logger.output", "LOG_OUTPUT")
	v.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	v.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	v.BindEnv("metrics.enabled", "ENABLE_METRICS")

	// AI backend
	v.BindEnv("ai_backend.base_url", "AI_BACKEND_URL")
	v.BindEnv("ai_backend.timeout", "AI_BACKEND_TIMEOUT")
	v.BindEnv("ai_backend.default_model", "AI_DEFAULT_MODEL")
	v.BindEnv("ai_backend.history_limit", "AI_HISTORY_LIMIT")

	// Timetable
	v.BindEnv("timetable.first_hour", "TIMETABLE_FIRST_HOUR")
	v.BindEnv("timetable.last_hour", "TIMETABLE_LAST_HOUR")
	v.BindEnv("timetable.timezone", "TIMETABLE_TIMEZONE")
	v.BindEnv("timetable.semester_start", "SEMESTER_START")
	v.BindEnv("timetable.semester_weeks", "SEMESTER_WEEKS")

	// Scheduler
	v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	v.BindEnv("scheduler.agenda_spec", "SCHEDULER_AGENDA_SPEC")
	v.BindEnv("scheduler.retention_spec", "SCHEDULER_RETENTION_SPEC")
	v.BindEnv("scheduler.completed_todo_retention", "COMPLETED_TODO_RETENTION")

	// Export
	v.BindEnv("export.renderer", "EXPORT_RENDERER")
	v.BindEnv("export.render_timeout", "EXPORT_RENDER_TIMEOUT")
}

func validateConfig(cfg *Config) error {
	if err := validation.ValidateStruct(&cfg.Server,
		validation.Field(&cfg.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validation.ValidateStruct(&cfg.Database,
		validation.Field(&cfg.Database.Driver, validation.Required, validation.In("postgres", "sqlite3")),
		validation.Field(&cfg.Database.Path, validation.When(cfg.Database.Driver == "sqlite3", validation.Required)),
		validation.Field(&cfg.Database.Host, validation.When(cfg.Database.Driver == "postgres", validation.Required)),
		validation.Field(&cfg.Database.Name, validation.When(cfg.Database.Driver == "postgres", validation.Required)),
	); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := validation.ValidateStruct(&cfg.AIBackend,
		validation.Field(&cfg.AIBackend.BaseURL, validation.Required),
		validation.Field(&cfg.AIBackend.HistoryLimit, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("ai_backend: %w", err)
	}

	if err := validation.ValidateStruct(&cfg.Timetable,
		validation.Field(&cfg.Timetable.FirstHour, validation.Min(0), validation.Max(23)),
		validation.Field(&cfg.Timetable.LastHour, validation.Min(cfg.Timetable.FirstHour), validation.Max(23)),
		validation.Field(&cfg.Timetable.SemesterStart, validation.Date("2006-01-02")),
		validation.Field(&cfg.Timetable.SemesterWeeks, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("timetable: %w", err)
	}
	if _, err := cfg.Timetable.Location(); err != nil {
		return fmt.Errorf("timetable: %w", err)
	}

	if err := validation.ValidateStruct(&cfg.Export,
		validation.Field(&cfg.Export.Renderer, validation.In("backend", "chromedp")),
	); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

// GetDSN returns the database connection string for the configured driver
func (cfg *DatabaseConfig) GetDSN() string {
	if cfg.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.Path)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// Location resolves the configured timezone
func (cfg *TimetableConfig) Location() (*time.Location, error) {
	if cfg.Timezone == "" || cfg.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// SemesterStartDate parses the semester start in the configured timezone.
// The zero time is returned when no start is configured.
func (cfg *TimetableConfig) SemesterStartDate() (time.Time, error) {
	if cfg.SemesterStart == "" {
		return time.Time{}, nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation("2006-01-02", cfg.SemesterStart, loc)
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
