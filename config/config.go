package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"

	AttemptStoreDatabase = "database"
	AttemptStoreRedis    = "redis"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
	Storage    StorageConfig    `yaml:"storage"`
	Database   DatabaseConfig   `yaml:"database"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Worker     WorkerConfig     `yaml:"worker"`
}

type HTTPConfig struct {
	Address             string   `yaml:"address"`
	SwaggerDir          string   `yaml:"swagger_dir"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type PricingConfig struct {
	RecentWindowMinutes int    `yaml:"recent_window_minutes"`
	RetentionMinutes    int    `yaml:"retention_minutes"`
	AttemptThreshold    int    `yaml:"attempt_threshold"`
	SurchargePercent    int64  `yaml:"surcharge_percent"`
	CountSearchAttempts bool   `yaml:"count_search_attempts"`
	AttemptStore        string `yaml:"attempt_store"`
}

func (p PricingConfig) RecentWindow() time.Duration {
	return time.Duration(p.RecentWindowMinutes) * time.Minute
}

func (p PricingConfig) Retention() time.Duration {
	return time.Duration(p.RetentionMinutes) * time.Minute
}

type CatalogConfig struct {
	MinRouteOffers         int   `yaml:"min_route_offers"`
	PriceMin               int64 `yaml:"price_min"`
	PriceMax               int64 `yaml:"price_max"`
	SuggestLimit           int   `yaml:"suggest_limit"`
	SuggestCacheTTLSeconds int   `yaml:"suggest_cache_ttl_seconds"`
	SeedOnStart            bool  `yaml:"seed_on_start"`
}

type EnrichmentConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Enabled reports whether the optional enrichment service should be called.
func (e EnrichmentConfig) Enabled() bool {
	return e.APIKey != "" && e.BaseURL != ""
}

type WorkerConfig struct {
	SweepMinutes int    `yaml:"sweep_minutes"`
	TicketDir    string `yaml:"ticket_dir"`
}

// Default returns the configuration used when a key is absent from the file.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:             ":3001",
			AllowedOrigins:      []string{"http://localhost:3000"},
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 30,
		},
		Log:     LogConfig{Level: "info"},
		Storage: StorageConfig{Driver: StorageMongo},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "flightbooking",
			SSLMode: "disable",
		},
		Mongo: MongoConfig{URI: "mongodb://localhost:27017", Database: "flightbooking"},
		Kafka: KafkaConfig{
			BookingTopic:       "bookings",
			NotificationsTopic: "booking-notifications",
			GroupID:            "flightbooking-worker",
		},
		Pricing: PricingConfig{
			RecentWindowMinutes: 5,
			RetentionMinutes:    10,
			AttemptThreshold:    3,
			SurchargePercent:    10,
			AttemptStore:        AttemptStoreDatabase,
		},
		Catalog: CatalogConfig{
			MinRouteOffers:         10,
			PriceMin:               2000,
			PriceMax:               3000,
			SuggestLimit:           5,
			SuggestCacheTTLSeconds: 300,
			SeedOnStart:            true,
		},
		Enrichment: EnrichmentConfig{
			BaseURL:   "http://api.aviationstack.com/v1",
			TimeoutMS: 2000,
		},
		Worker: WorkerConfig{SweepMinutes: 5, TicketDir: "tickets"},
	}
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// environment overrides. A .env file in the working directory is loaded
// first when present. A missing config file is not an error.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMongo, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Pricing.AttemptStore {
	case AttemptStoreDatabase:
	case AttemptStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("pricing.attempt_store is redis but redis.addr is empty")
		}
	default:
		return fmt.Errorf("unknown attempt store %q", c.Pricing.AttemptStore)
	}
	if c.Pricing.RecentWindowMinutes <= 0 || c.Pricing.RetentionMinutes < c.Pricing.RecentWindowMinutes {
		return fmt.Errorf("pricing windows must satisfy 0 < recent <= retention")
	}
	if c.Pricing.AttemptThreshold < 1 {
		return fmt.Errorf("pricing.attempt_threshold must be at least 1")
	}
	if c.Pricing.SurchargePercent < 0 {
		return fmt.Errorf("pricing.surcharge_percent must not be negative")
	}
	if c.Catalog.PriceMin <= 0 || c.Catalog.PriceMax < c.Catalog.PriceMin {
		return fmt.Errorf("catalog price range must satisfy 0 < min <= max")
	}
	if c.Catalog.MinRouteOffers <= 0 || c.Catalog.SuggestLimit <= 0 {
		return fmt.Errorf("catalog min_route_offers and suggest_limit must be positive")
	}
	if c.Worker.SweepMinutes <= 0 {
		return fmt.Errorf("worker sweep_minutes must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.HTTP.Address = getEnv("HTTP_ADDRESS", cfg.HTTP.Address)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)

	cfg.Database.Host = getEnv("DATABASE_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DATABASE_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DATABASE_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DATABASE_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DATABASE_NAME", cfg.Database.Name)

	cfg.Mongo.URI = getEnv("MONGODB_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = getEnv("MONGODB_DATABASE", cfg.Mongo.Database)
	cfg.Mongo.Username = getEnv("MONGODB_USER", cfg.Mongo.Username)
	cfg.Mongo.Password = getEnv("MONGODB_PASSWORD", cfg.Mongo.Password)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}

	cfg.Enrichment.APIKey = getEnv("AVIATIONSTACK_API_KEY", cfg.Enrichment.APIKey)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
