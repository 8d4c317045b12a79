package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Data backend: "rest" talks to the hosted BaaS rows API,
	// "postgres" connects straight to the project database.
	DataBackend string

	// BaaS (rest backend)
	BaaSURL        string
	BaaSAnonKey    string
	BaaSServiceKey string

	// Database (postgres backend)
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	EnableRedis bool
	RedisURL    string

	// JWT issued by the BaaS auth service
	JWTSecret string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Static page fragments
	FragmentsDir string
	FragmentsURL string

	// Upload
	UploadDir     string
	MaxUploadSize int64

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Editor
	PreviewDebounceMs     int
	PreviewAutoRefreshSec int

	// Features
	EnableCache   bool
	EnableMetrics bool

	// Site Meta
	SiteName        string
	SiteDescription string
	SiteURL         string
}

func New() *Config {
	c := &Config{
		DataBackend: getEnv("DATA_BACKEND", "rest"),

		BaaSURL:        getEnv("BAAS_URL", "http://localhost:54321"),
		BaaSAnonKey:    getEnv("BAAS_ANON_KEY", ""),
		BaaSServiceKey: getEnv("BAAS_SERVICE_KEY", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "unionuser"),
		DBPassword: getEnv("DB_PASSWORD", "unionpassword"),
		DBName:     getEnv("DB_NAME", "uniondb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		EnableRedis: getEnvAsBool("ENABLE_REDIS", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		FragmentsDir: getEnv("FRAGMENTS_DIR", "./fragments"),
		FragmentsURL: getEnv("FRAGMENTS_URL", ""),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: 10 * 1024 * 1024, // 10MB

		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 20),

		PreviewDebounceMs:     getEnvAsInt("PREVIEW_DEBOUNCE_MS", 200),
		PreviewAutoRefreshSec: getEnvAsInt("PREVIEW_AUTO_REFRESH_SEC", 0),

		EnableCache:   getEnvAsBool("ENABLE_CACHE", true),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		SiteName:        getEnv("SITE_NAME", "Student Union"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "News, events and the journal of the university student association."),
		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	if !getEnvIsSet("ENABLE_REDIS") && !c.EnableCache {
		c.EnableRedis = false
	}

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIsSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
