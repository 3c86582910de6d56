package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port    string
	Env     string // "production" | "development"
	MongoURI string
	MongoDB  string

	JWTSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	FrontendURL string
	AppName     string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	RedisAddr          string
	LikeRateLimit      int // toggles per window per IP
	LikeRateWindowMins int

	FuelAPIKey  string
	FuelAPIHost string
	FuelCron    string

	RabbitURL      string
	RabbitExchange string
}

func Load() Config {
	return Config{
		Port:     getenv("APP_PORT", "8080"),
		Env:      getenv("ENV", "development"),
		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "contentplatform"),

		JWTSecret: getenv("JWT_SECRET", "your-secret-key"),

		GoogleClientID:     getenv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", ""),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),
		AppName:     getenv("APP_NAME", "ContentPlatform"),

		SMTPHost: getenv("SMTP_HOST", ""),
		SMTPPort: atoi(getenv("SMTP_PORT", "587")),
		SMTPUser: getenv("SMTP_USER", ""),
		SMTPPass: getenv("SMTP_PASS", ""),
		MailFrom: getenv("EMAIL_FROM", "noreply@yourapp.com"),

		RedisAddr:          getenv("REDIS_ADDR", ""),
		LikeRateLimit:      atoi(getenv("LIKE_RATE_LIMIT", "30")),
		LikeRateWindowMins: atoi(getenv("LIKE_RATE_WINDOW_MIN", "15")),

		FuelAPIKey:  getenv("FUEL_API_KEY", ""),
		FuelAPIHost: getenv("FUEL_API_HOST", "daily-petrol-diesel-lpg-cng-fuel-prices-in-india.p.rapidapi.com"),
		FuelCron:    getenv("FUEL_CRON", "0 9 * * *"),

		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "content.events"),
	}
}

func (c Config) IsProduction() bool { return c.Env == "production" }

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
