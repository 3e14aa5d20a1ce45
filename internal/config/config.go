package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	RabbitURL       string
	RedisAddr       string
	RateLimitPerMin int
	Prod            bool
}

func Load() Config {
	// .env is optional; system env wins when both are present
	_ = godotenv.Load()

	return Config{
		Port:            getenv("APP_PORT", "3001"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "bookstore"),
		RabbitURL:       getenv("RABBIT_URL", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "0")),
		Prod:            getenv("APP_ENV", "dev") == "prod",
	}
}

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
