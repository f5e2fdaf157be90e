package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	ShareBaseURL        string // base URL embedded in referral share links
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	ExpiryJobSchedule   string // cron expression for the listing expiry sweep; empty disables it
	ListingLifespanDays int    // default lifespan applied to new listings
	ListingCacheTTLSec  int    // TTL for cached listing snapshots in Redis
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	lifespan := viper.GetInt("LISTING_LIFESPAN_DAYS")
	if lifespan <= 0 {
		lifespan = 30
	}
	cacheTTL := viper.GetInt("LISTING_CACHE_TTL_SEC")
	if cacheTTL <= 0 {
		cacheTTL = 300
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		ShareBaseURL:        shareBaseURL(viper.GetString("SHARE_BASE_URL")),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		ExpiryJobSchedule:   viper.GetString("LISTING_EXPIRY_JOB_SCHEDULE"),
		ListingLifespanDays: lifespan,
		ListingCacheTTLSec:  cacheTTL,
	}, nil
}

func shareBaseURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "https://getpaid.bi"
	}
	return strings.TrimRight(s, "/")
}
