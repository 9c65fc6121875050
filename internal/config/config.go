package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Provider exposes the configuration values consumed across the application.
// Handlers and modules depend on this interface so tests can swap in fakes.
type Provider interface {
	GetAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetDBUrl() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetLogFormat() string
	GetAvatarCacheDir() string
	GetEmailProvider() string
	GetEmailSender() string
	GetEmailAPIKey() string
}

// Config holds all configuration for the application.
type Config struct {
	Addr           string
	AppBaseURL     string
	SessionSecret  string
	DBUrl          string
	DBNs           string
	DBDb           string
	DBUser         string
	DBPass         string
	LogFormat      string
	AvatarCacheDir string
	EmailProvider  string
	EmailSender    string
	EmailAPIKey    string
}

// New loads configuration from environment variables, reading a .env file
// first when one exists.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Addr:           getenv("BLENNY_ADDR", ":8080"),
		AppBaseURL:     getenv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		DBUrl:          os.Getenv("SURREAL_URL"),
		DBNs:           os.Getenv("SURREAL_NS"),
		DBDb:           os.Getenv("SURREAL_DB"),
		DBUser:         os.Getenv("SURREAL_USER"),
		DBPass:         os.Getenv("SURREAL_PASS"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
		AvatarCacheDir: getenv("AVATAR_CACHE_DIR", ".cache/avatars"),
		EmailProvider:  getenv("EMAIL_PROVIDER", "log"),
		EmailSender:    getenv("EMAIL_SENDER", "Blenny <noreply@localhost>"),
		EmailAPIKey:    os.Getenv("EMAIL_API_KEY"),
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("Required environment variable SESSION_SECRET is not set.")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetAddr() string           { return c.Addr }
func (c *Config) GetAppBaseURL() string     { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string  { return c.SessionSecret }
func (c *Config) GetDBUrl() string          { return c.DBUrl }
func (c *Config) GetDBNs() string           { return c.DBNs }
func (c *Config) GetDBDb() string           { return c.DBDb }
func (c *Config) GetDBUser() string         { return c.DBUser }
func (c *Config) GetDBPass() string         { return c.DBPass }
func (c *Config) GetLogFormat() string      { return c.LogFormat }
func (c *Config) GetAvatarCacheDir() string { return c.AvatarCacheDir }
func (c *Config) GetEmailProvider() string  { return c.EmailProvider }
func (c *Config) GetEmailSender() string    { return c.EmailSender }
func (c *Config) GetEmailAPIKey() string    { return c.EmailAPIKey }
