package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// defaultOrigins are always allowed; the deployed frontend URL is added on
// top via FRONTEND_URL. EmailJS appears here because the site sends contact
// mail straight from the browser.
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5237",
	"https://ceejeey.me",
	"https://api.emailjs.com",
}

// Config collects every knob of the request pipeline and the external
// collaborators so handlers and middlewares never reach for the environment
// themselves.
type Config struct {
	Port   int
	APPEnv string

	MongoURI string
	DBName   string

	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	CloudName          string
	CloudinaryAPIKey   string
	CloudinarySecret   string

	AllowedOrigins  []string
	RateLimitWindow time.Duration
	RateLimitMax    int
	RequestTimeout  time.Duration
	MaxUploadBytes  int64
	UploadDir       string
}

func Load() *Config {
	cfg := &Config{
		Port:   envInt("PORT", 8080),
		APPEnv: os.Getenv("APP_ENV"),

		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   envStr("DB_NAME", "travelling"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      time.Hour,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		CloudName:        os.Getenv("CLOUD_NAME"),
		CloudinaryAPIKey: os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_SECRET_KEY"),

		AllowedOrigins:  append([]string{}, defaultOrigins...),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    envInt("RATE_LIMIT_MAX", 100),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 8*time.Second),
		MaxUploadBytes:  int64(envInt("MAX_UPLOAD_MB", 50)) << 20,
		UploadDir:       envStr("UPLOAD_DIR", "uploads"),
	}

	if frontend := strings.TrimRight(os.Getenv("FRONTEND_URL"), "/"); frontend != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, frontend)
	}

	return cfg
}

// Dev reports whether the process runs in a development configuration. Only
// then may error responses carry underlying detail.
func (c *Config) Dev() bool {
	return c.APPEnv == "development"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
