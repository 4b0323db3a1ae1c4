package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"foundly/pkg/errors"
)

type Config struct {
	ServerPort         string
	FirebaseProject    string
	FirebaseApiKey     string
	ServiceAccountJSON string
	ServiceAccountPath string
	Environment        string
	JWTSecret          string
	JWTExpiry          int64
	ProfilePageSize    int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:     getEnv("FIREBASE_API_KEY", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:          getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		ProfilePageSize:    getEnvAsInt("PROFILE_PAGE_SIZE", 50),
	}

	return config, nil
}

// Validate reports whether the backend credentials needed for authenticated
// functionality are present. The server still starts without them, but only
// serves the health endpoint and a configuration notice.
func (c *Config) Validate() error {
	if c.FirebaseProject == "" {
		return errors.ConfigurationMissing("FIREBASE_PROJECT_ID is not set")
	}
	if c.ServiceAccountJSON == "" && c.ServiceAccountPath == "" {
		return errors.ConfigurationMissing("no Firebase service account configured")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
