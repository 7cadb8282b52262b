// config/config.go
package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTKey          []byte
	JWTExpiration   time.Duration
	CheckoutBaseURL string
	ClientOrigin    string
}

func Load() Config {
	cfg := Config{
		Port:            getenv("PORT", "3000"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "assetVerse_DB"),
		CheckoutBaseURL: getenv("CHECKOUT_BASE_URL", "https://checkout.assetverse.app/pay"),
		ClientOrigin:    os.Getenv("CLIENT_DOMAIN"),
	}

	cfg.JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(cfg.JWTKey) == 0 {
		cfg.JWTKey = []byte("secret")
	}

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 24 * time.Hour
	if expireStr != "" {
		if expireStr == "7d" {
			dur = 7 * 24 * time.Hour
		} else {
			var err error
			dur, err = time.ParseDuration(expireStr)
			if err != nil {
				log.Printf("Invalid JWT_EXPIRE: %s, using 24h", expireStr)
				dur = 24 * time.Hour
			}
		}
	}
	cfg.JWTExpiration = dur

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
