package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Directory  DirectorySourceConfig
	Warehouse  WarehouseSourceConfig
	Access     AccessConfig
	Compliance ComplianceConfig
	Sync       SyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// DirectorySourceConfig points at the HRIS directory API.
type DirectorySourceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// WarehouseSourceConfig points at the time-tracking data warehouse API.
// The warehouse authenticates via OAuth2 client credentials.
type WarehouseSourceConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// AccessConfig carries the HR-admin allowlist. Injected into the resolver
// rather than living as a package-level constant so tests can vary it.
type AccessConfig struct {
	HRAdminEmails []string
}

// ComplianceConfig carries the office-attendance policy knobs.
type ComplianceConfig struct {
	RequiredOfficeDays int
	WorkWeek           []time.Weekday
}

type SyncConfig struct {
	Enabled  bool
	Interval time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "worklens"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Directory source configuration
	directoryTimeout, err := time.ParseDuration(getEnv("DIRECTORY_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIRECTORY_API_TIMEOUT: %w", err)
	}
	config.Directory = DirectorySourceConfig{
		BaseURL: getEnv("DIRECTORY_API_URL", ""),
		APIKey:  getEnv("DIRECTORY_API_KEY", ""),
		Timeout: directoryTimeout,
	}

	// Warehouse source configuration
	warehouseTimeout, err := time.ParseDuration(getEnv("WAREHOUSE_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WAREHOUSE_API_TIMEOUT: %w", err)
	}
	config.Warehouse = WarehouseSourceConfig{
		BaseURL:      getEnv("WAREHOUSE_API_URL", ""),
		TokenURL:     getEnv("WAREHOUSE_TOKEN_URL", ""),
		ClientID:     getEnv("WAREHOUSE_CLIENT_ID", ""),
		ClientSecret: getEnv("WAREHOUSE_CLIENT_SECRET", ""),
		Timeout:      warehouseTimeout,
	}

	// Access configuration
	config.Access = AccessConfig{
		HRAdminEmails: getEnvSlice("HR_ADMIN_EMAILS"),
	}

	// Compliance policy configuration
	requiredOfficeDays, err := strconv.Atoi(getEnv("COMPLIANCE_REQUIRED_OFFICE_DAYS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLIANCE_REQUIRED_OFFICE_DAYS: %w", err)
	}
	workWeek, err := parseWorkWeek(getEnv("COMPLIANCE_WORK_WEEK", "Mon-Fri"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLIANCE_WORK_WEEK: %w", err)
	}
	config.Compliance = ComplianceConfig{
		RequiredOfficeDays: requiredOfficeDays,
		WorkWeek:           workWeek,
	}

	// Sync configuration
	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}
	config.Sync = SyncConfig{
		Enabled:  getEnv("SYNC_ENABLED", "true") == "true",
		Interval: syncInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Directory.BaseURL == "" {
		return fmt.Errorf("DIRECTORY_API_URL is required")
	}
	if c.Warehouse.BaseURL == "" {
		return fmt.Errorf("WAREHOUSE_API_URL is required")
	}
	if c.Compliance.RequiredOfficeDays < 0 {
		return fmt.Errorf("COMPLIANCE_REQUIRED_OFFICE_DAYS must not be negative")
	}
	if len(c.Compliance.WorkWeek) == 0 {
		return fmt.Errorf("COMPLIANCE_WORK_WEEK must name at least one day")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// parseWorkWeek accepts either a range ("Mon-Fri") or a comma list ("Sun,Tue,Thu").
func parseWorkWeek(value string) ([]time.Weekday, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty work week")
	}

	if strings.Contains(value, "-") {
		parts := strings.SplitN(value, "-", 2)
		from, ok := weekdayNames[strings.ToLower(strings.TrimSpace(parts[0]))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", parts[0])
		}
		to, ok := weekdayNames[strings.ToLower(strings.TrimSpace(parts[1]))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", parts[1])
		}
		var days []time.Weekday
		for d := from; ; d = (d + 1) % 7 {
			days = append(days, d)
			if d == to {
				break
			}
			if len(days) > 7 {
				return nil, fmt.Errorf("unterminated weekday range %q", value)
			}
		}
		return days, nil
	}

	var days []time.Weekday
	for _, name := range strings.Split(value, ",") {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, d)
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
