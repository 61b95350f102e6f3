// file: internals/configs/config.go
package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ no .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 running on Railway, using system ENV")
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	JWTRefreshSecret = os.Getenv("JWT_REFRESH_SECRET")
	if JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET is empty")
	}
}

func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// MaxRegistrationsPerVoting is the cap on candidatures in one general
// election. The production value is still being discussed with the school
// board (15 vs 50), so it stays configurable.
func MaxRegistrationsPerVoting() int {
	return GetEnvInt("ELECTION_MAX_REGISTRATIONS", 15)
}
