package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/product-vote/models"
)

const (
	DefaultPort           = 3318
	DefaultBackend        = "sqlite"
	DefaultSQLiteURL      = "file:votes.db"
	DefaultContentURL     = "https://fakerapi.it/api/v2/texts?_quantity=10&_characters=120"
	DefaultContentTimeout = 3 * time.Second
	DefaultKafkaTopic     = "votes"
)

type Config struct {
	Port                int
	Backend             string
	DatabaseURL         string
	RedisURL            string
	FirebaseDatabaseURL string
	FirebaseCredentials string
	Products            models.Catalog
	ContentURL          string
	ContentTimeout      time.Duration
	KafkaBrokers        []string
	KafkaTopic          string
}

// LoadEnvFile loads variables from a .env file into the environment.
// Variables already set are left alone; a missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Info("loaded environment file", "path", path)
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var products, brokers string

	fs := flag.NewFlagSet("product-vote", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Vote store backend (memory, sqlite, postgres, redis, firebase)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite or postgres)")
	fs.StringVar(&cfg.RedisURL, "redis-url", "", "Redis URL")
	fs.StringVar(&cfg.FirebaseDatabaseURL, "firebase-url", "", "Firebase Realtime Database URL")
	fs.StringVar(&cfg.FirebaseCredentials, "firebase-credentials", "", "Service account key file (prefer env)")
	fs.StringVar(&products, "products", "", "Product catalog as value:label pairs separated by commas")
	fs.StringVar(&cfg.ContentURL, "content-url", "", "Sample content API URL")
	fs.DurationVar(&cfg.ContentTimeout, "content-timeout", 0, "Sample content request timeout")
	fs.StringVar(&brokers, "kafka-brokers", "", "Kafka brokers for vote events, comma separated")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", "", "Kafka topic for vote events")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("VOTE_BACKEND")
		if cfg.Backend == "" {
			cfg.Backend = DefaultBackend
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.FirebaseDatabaseURL == "" {
		cfg.FirebaseDatabaseURL = os.Getenv("FIREBASE_DATABASE_URL")
	}
	if cfg.FirebaseCredentials == "" {
		cfg.FirebaseCredentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	// Backend-specific requirements
	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLiteURL
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case "redis":
		if cfg.RedisURL == "" {
			return Config{}, errors.New("REDIS_URL required for redis backend")
		}
	case "firebase":
		if cfg.FirebaseDatabaseURL == "" {
			return Config{}, errors.New("FIREBASE_DATABASE_URL required for firebase backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if products == "" {
		products = os.Getenv("PRODUCTS")
	}
	catalog, err := models.ParseCatalog(products)
	if err != nil {
		return Config{}, err
	}
	cfg.Products = catalog

	if cfg.ContentURL == "" {
		cfg.ContentURL = os.Getenv("CONTENT_API_URL")
		if cfg.ContentURL == "" {
			cfg.ContentURL = DefaultContentURL
		}
	}

	if cfg.ContentTimeout == 0 {
		if timeoutStr := os.Getenv("CONTENT_API_TIMEOUT"); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				return Config{}, errors.New("invalid CONTENT_API_TIMEOUT env variable")
			}
			cfg.ContentTimeout = timeout
		} else {
			cfg.ContentTimeout = DefaultContentTimeout
		}
	}
	if cfg.ContentTimeout < 0 {
		return Config{}, errors.New("content timeout must be positive")
	}

	if brokers == "" {
		brokers = os.Getenv("KAFKA_BROKERS")
	}
	cfg.KafkaBrokers = splitList(brokers)

	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = os.Getenv("KAFKA_TOPIC")
		if cfg.KafkaTopic == "" {
			cfg.KafkaTopic = DefaultKafkaTopic
		}
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
