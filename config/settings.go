package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings is the process-wide configuration, loaded once before serving
// and read-only afterwards.
type Settings struct {
	Port     string `envconfig:"PORT" default:"5000"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	TokenSecret string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`

	MongoURI     string `envconfig:"MONGO_URI"`
	MongoUser    string `envconfig:"DB_USER"`
	MongoPass    string `envconfig:"DB_PASS"`
	MongoCluster string `envconfig:"DB_CLUSTER" default:"cluster0.mongodb.net"`
	MongoDB      string `envconfig:"MONGO_DB" default:"bikePartsDB"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	PostgresURI  string `envconfig:"POSTGRES_URI"`
	AuditWorkers int    `envconfig:"AUDIT_WORKERS" default:"2"`

	GCSBucket          string `envconfig:"GCS_BUCKET"`
	GCSCredentialsFile string `envconfig:"GCS_CREDENTIALS_FILE"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads Settings from the environment. Missing required values are
// reported here so the process fails before binding its port.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}
	if _, err := s.MongoConnString(); err != nil {
		return nil, err
	}
	return &s, nil
}

// MongoConnString prefers MONGO_URI and falls back to an Atlas SRV string
// assembled from DB_USER, DB_PASS and DB_CLUSTER.
func (s *Settings) MongoConnString() (string, error) {
	if s.MongoURI != "" {
		return s.MongoURI, nil
	}
	if s.MongoUser == "" || s.MongoPass == "" {
		return "", errors.New("MONGO_URI or DB_USER and DB_PASS must be set")
	}
	creds := url.UserPassword(s.MongoUser, s.MongoPass).String()
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority", creds, s.MongoCluster), nil
}

func (s *Settings) CacheEnabled() bool   { return s.RedisAddr != "" }
func (s *Settings) AuditEnabled() bool   { return s.PostgresURI != "" }
func (s *Settings) StorageEnabled() bool { return s.GCSBucket != "" }

// AuditQueueEnabled reports whether audit writes go through the Redis
// stream rather than straight to Postgres.
func (s *Settings) AuditQueueEnabled() bool {
	return s.CacheEnabled() && s.AuditEnabled() && s.AuditWorkers > 0
}
