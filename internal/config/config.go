package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
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
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the reconciliation knobs: the tolerance window
// applied before a check-in counts as late, and the registered worksites
// used to label check-in coordinates.
type AttendanceConfig struct {
	ToleranceMinutes int
	Worksites        []Worksite
}

// Worksite is a registered location. Coordinates are used only to label
// events with the nearest site; presence inside the radius is never
// enforced.
type Worksite struct {
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on process environment")
	}

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
		Name:     getEnv("DB_NAME", "arventa-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	tolerance, err := strconv.Atoi(getEnv("ATTENDANCE_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TOLERANCE_MINUTES: %w", err)
	}

	worksites, err := parseWorksites(getEnv("WORKSITES", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKSITES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ToleranceMinutes: tolerance,
		Worksites:        worksites,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.ToleranceMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_TOLERANCE_MINUTES must not be negative")
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

// parseWorksites parses the WORKSITES env value, a comma-separated list of
// name:latitude:longitude:radius_meters entries, e.g.
// "plant-a:-6.2146:106.8451:250,warehouse:-6.1754:106.8272:150".
func parseWorksites(value string) ([]Worksite, error) {
	if value == "" {
		return nil, nil
	}

	var sites []Worksite
	for _, entry := range strings.Split(value, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("worksite entry %q must be name:lat:lon:radius", entry)
		}

		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("worksite %q latitude: %w", parts[0], err)
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("worksite %q longitude: %w", parts[0], err)
		}
		radius, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, fmt.Errorf("worksite %q radius: %w", parts[0], err)
		}

		sites = append(sites, Worksite{
			Name:         parts[0],
			Latitude:     lat,
			Longitude:    lon,
			RadiusMeters: radius,
		})
	}

	return sites, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
