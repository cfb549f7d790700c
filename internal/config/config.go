package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	RedisURL       string
	MeiliHost      string
	MeiliAPIKey    string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
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

	bucket := viper.GetString("MINIO_BUCKET")
	if bucket == "" {
		bucket = "listing-images"
	}

	return &Config{
		Env:            env,
		Port:           port,
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		RedisURL:       viper.GetString("REDIS_URL"),
		MeiliHost:      viper.GetString("MEILI_HOST"),
		MeiliAPIKey:    viper.GetString("MEILI_API_KEY"),
		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioBucket:    bucket,
		MinioUseSSL:    strings.EqualFold(viper.GetString("MINIO_USE_SSL"), "true"),
	}, nil
}
