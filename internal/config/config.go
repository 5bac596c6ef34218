package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr            string
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration
	MongoSelectTimeout  time.Duration
	MongoMaxPoolSize    uint64
	MongoMinPoolSize    uint64
	RedisAddr           string
	KafkaBrokers        []string
	JWTSecret           string
	JWTRefreshSecret    string
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	ServiceName         string
}

func Load() Config {
	return Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8000"),
		MongoURI:            getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getenv("MONGODB_DATABASE", "ecommerce"),
		MongoConnectTimeout: getenvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		MongoSelectTimeout:  getenvDuration("MONGODB_SELECT_TIMEOUT", 5*time.Second),
		MongoMaxPoolSize:    getenvUint("MONGODB_MAX_POOL_SIZE", 100),
		MongoMinPoolSize:    getenvUint("MONGODB_MIN_POOL_SIZE", 10),
		RedisAddr:           getenv("REDIS_ADDR", ""),
		KafkaBrokers:        splitCSV(getenv("KAFKA_BROKERS", "")),
		JWTSecret:           getenv("JWT_SECRET", "dev-secret"),
		JWTRefreshSecret:    getenv("JWT_REFRESH_SECRET", "dev-refresh-secret"),
		RequestTimeout:      getenvDuration("REQUEST_TIMEOUT", 15*time.Second),
		ShutdownTimeout:     getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ServiceName:         getenv("SERVICE_NAME", "storefront-api"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// unparsable values fall back to the default rather than aborting startup
func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvUint(key string, def uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
