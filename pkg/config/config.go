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
	Location    LocationConfig
	Thresholds  ThresholdConfig
	OpenWeather OpenWeatherConfig
	SMTP        SMTPConfig
	Redis       RedisConfig
	Database    DatabaseConfig
	Kafka       KafkaConfig
}

// LocationConfig identifies the single target point the advisor runs for.
// UTCOffset is the fixed local offset of that point; date bucketing never
// consults the host timezone.
type LocationConfig struct {
	Label     string
	Latitude  float64
	Longitude float64
	UTCOffset time.Duration
}

type ThresholdConfig struct {
	DampRiskTemp float64 // mean temp below this + clouds -> damp-risk drying advice
	HighTemp     float64 // max temp above this -> sun-protection umbrella advice
}

type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Retries int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether the duplicate-send journal was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Enabled reports whether a run-history database was configured at all.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Brokers[0] != ""
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	config := &Config{
		Location: LocationConfig{
			Label:     getEnv("LOCATION_LABEL", "Tokyo"),
			Latitude:  getEnvAsFloat("LOCATION_LAT", 35.6895),
			Longitude: getEnvAsFloat("LOCATION_LON", 139.6917),
			UTCOffset: getEnvAsDuration("LOCATION_UTC_OFFSET", 9*time.Hour),
		},
		Thresholds: ThresholdConfig{
			DampRiskTemp: getEnvAsFloat("THRESHOLD_DAMP_RISK_TEMP", 30.0),
			HighTemp:     getEnvAsFloat("THRESHOLD_HIGH_TEMP", 35.0),
		},
		OpenWeather: OpenWeatherConfig{
			APIKey:  getEnv("OPENWEATHER_API_KEY", ""),
			BaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/forecast"),
			Timeout: getEnvAsDuration("OPENWEATHER_TIMEOUT", 10*time.Second),
			Retries: getEnvAsInt("OPENWEATHER_RETRIES", 3),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "weather-advisor@example.com"),
			To:       getEnv("SMTP_TO", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "advisor_user"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "advisor_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", ""), ","),
			Topic:   getEnv("KAFKA_TOPIC_ADVISORIES", "weather.advisories"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects unusable configuration before any network or analysis
// work starts.
func (c *Config) Validate() error {
	if c.OpenWeather.APIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	if c.SMTP.To == "" {
		return fmt.Errorf("SMTP_TO is required")
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("LOCATION_LAT out of range: %f", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("LOCATION_LON out of range: %f", c.Location.Longitude)
	}
	if c.Location.UTCOffset < -12*time.Hour || c.Location.UTCOffset > 14*time.Hour {
		return fmt.Errorf("LOCATION_UTC_OFFSET out of range: %s", c.Location.UTCOffset)
	}
	if c.Thresholds.DampRiskTemp >= c.Thresholds.HighTemp {
		return fmt.Errorf("THRESHOLD_DAMP_RISK_TEMP (%.1f) must be below THRESHOLD_HIGH_TEMP (%.1f)",
			c.Thresholds.DampRiskTemp, c.Thresholds.HighTemp)
	}
	if c.OpenWeather.Retries < 1 {
		return fmt.Errorf("OPENWEATHER_RETRIES must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
