// internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Training TrainingConfig
	Alerts   AlertConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	AlertTTL      int
}

// TrainingConfig holds the forecasting policy constants.
type TrainingConfig struct {
	HorizonMonths       int
	MinFitLength        int
	RecentWindow        int
	NaiveGrowthRate     float64
	WorkerCount         int
	ArtifactPath        string
	SeasonalProfilePath string
}

// AlertConfig holds the decision-engine thresholds.
type AlertConfig struct {
	ExpiryThresholdDays  int
	ReorderWarningDays   float64
	OverstockExcessRatio float64
	LongLeadTimeBuffer   float64
}

// StorageConfig configures the optional object-storage backup of the
// forecast artifact.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	KeyPrefix string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "playauto")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ALERT_TTL_SECONDS", 60)
		viper.SetDefault("TRAIN_HORIZON_MONTHS", 3)
		viper.SetDefault("TRAIN_MIN_FIT_LENGTH", 4)
		viper.SetDefault("TRAIN_RECENT_WINDOW", 3)
		viper.SetDefault("TRAIN_NAIVE_GROWTH_RATE", 0.05)
		viper.SetDefault("TRAIN_WORKER_COUNT", 4)
		viper.SetDefault("TRAIN_ARTIFACT_PATH", filepath.Join("data", "models", "forecasts.json"))
		viper.SetDefault("TRAIN_SEASONAL_PROFILE_PATH", filepath.Join("data", "seasonal_profiles.json"))
		viper.SetDefault("ALERT_EXPIRY_THRESHOLD_DAYS", 21)
		viper.SetDefault("ALERT_REORDER_WARNING_DAYS", 10.0)
		viper.SetDefault("ALERT_OVERSTOCK_EXCESS_RATIO", 0.15)
		viper.SetDefault("ALERT_LONG_LEAD_TIME_BUFFER", 1.2)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_KEY_PREFIX", "forecasts")
		viper.SetDefault("STORAGE_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure the artifact directory exists
		ensureDir(filepath.Dir(viper.GetString("TRAIN_ARTIFACT_PATH")))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				AlertTTL:      viper.GetInt("CACHE_ALERT_TTL_SECONDS"),
			},
			Training: TrainingConfig{
				HorizonMonths:       viper.GetInt("TRAIN_HORIZON_MONTHS"),
				MinFitLength:        viper.GetInt("TRAIN_MIN_FIT_LENGTH"),
				RecentWindow:        viper.GetInt("TRAIN_RECENT_WINDOW"),
				NaiveGrowthRate:     viper.GetFloat64("TRAIN_NAIVE_GROWTH_RATE"),
				WorkerCount:         viper.GetInt("TRAIN_WORKER_COUNT"),
				ArtifactPath:        viper.GetString("TRAIN_ARTIFACT_PATH"),
				SeasonalProfilePath: viper.GetString("TRAIN_SEASONAL_PROFILE_PATH"),
			},
			Alerts: AlertConfig{
				ExpiryThresholdDays:  viper.GetInt("ALERT_EXPIRY_THRESHOLD_DAYS"),
				ReorderWarningDays:   viper.GetFloat64("ALERT_REORDER_WARNING_DAYS"),
				OverstockExcessRatio: viper.GetFloat64("ALERT_OVERSTOCK_EXCESS_RATIO"),
				LongLeadTimeBuffer:   viper.GetFloat64("ALERT_LONG_LEAD_TIME_BUFFER"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				KeyPrefix: viper.GetString("STORAGE_KEY_PREFIX"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
