package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
)

// Backends aceptados en STORE_BACKEND
const (
	BackendMongo = "mongo"
	BackendSolr  = "solr"
)

// Config contiene la configuración leída de las variables de entorno
type Config struct {
	Port            string        `env:"PORT,default=8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=30s"`

	MongoURI      string `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE,default=estate"`
	StoreBackend  string `env:"STORE_BACKEND,default=mongo"`
	SolrURL       string `env:"SOLR_URL,default=http://localhost:8983/solr/properties"`

	MemcachedHost  string        `env:"MEMCACHED_HOST"`
	CacheEnabled   bool          `env:"CACHE_ENABLED,default=true"`
	CacheLocalTTL  time.Duration `env:"CACHE_LOCAL_TTL,default=5m"`
	CacheSharedTTL time.Duration `env:"CACHE_SHARED_TTL,default=15m"`

	RabbitMQURL   string `env:"RABBITMQ_URL"`
	PropertyQueue string `env:"PROPERTY_QUEUE,default=properties_queue"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=3306"`
	DBUser     string `env:"DB_USER,default=estate_user"`
	DBPassword string `env:"DB_PASSWORD,default=estate_password"`
	DBName     string `env:"DB_NAME,default=estate_users"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=24h"`

	// Admin inicial, se crea al arrancar si no existe
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=40"`

	CORSAllowedOriginsStr string   `env:"CORS_ALLOWED_ORIGINS,default=*"`
	CORSAllowedOrigins    []string

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// LoadConfig lee un .env opcional y después las variables de entorno
func LoadConfig() (*Config, error) {
	// fuera de desarrollo es normal que no haya .env
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	for _, origin := range strings.Split(cfg.CORSAllowedOriginsStr, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// MySQLDSN arma el DSN de MySQL para gorm
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// validateConfig rechaza valores inválidos y ajusta el resto a rangos seguros
func validateConfig(cfg *Config) error {
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	switch cfg.StoreBackend {
	case BackendMongo, BackendSolr:
	default:
		return fmt.Errorf("STORE_BACKEND must be mongo or solr; got %q", cfg.StoreBackend)
	}

	if cfg.StoreBackend == BackendSolr && cfg.SolrURL == "" {
		return errors.New("SOLR_URL is required when STORE_BACKEND=solr")
	}

	if len(cfg.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be set and at least 32 characters")
	}

	if cfg.AdminUsername != "" && (cfg.AdminEmail == "" || len(cfg.AdminPassword) < 8) {
		return errors.New("ADMIN_USERNAME requires ADMIN_EMAIL and an ADMIN_PASSWORD of at least 8 characters")
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 10
	}
	if cfg.RateLimitBurst < 1 {
		cfg.RateLimitBurst = 1
	}
	if cfg.CacheLocalTTL <= 0 {
		cfg.CacheLocalTTL = 5 * time.Minute
	}
	if cfg.CacheSharedTTL < time.Second {
		cfg.CacheSharedTTL = 15 * time.Minute
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return nil
}
