package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Store struct {
	Driver string
	DSN    string
}

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Enabled    bool
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Assist struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Config struct {
	ServerPort          int
	AppURL              string
	LogLevel            string
	Store               Store
	DB                  DB
	MinIO               MinIO
	Assist              Assist
	AdminPassword       string
	AdminPasswordHash   string
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	MaxUploadSize       int64
	MaxEncodeSize       int64
}

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadStore() Store {
	driver := getEnv("STORE_DRIVER", StoreSQLite)
	dsn := getEnv("STORE_DSN", "")
	if dsn == "" && driver == StoreSQLite {
		dsn = "data/elenco.db"
	}
	return Store{Driver: driver, DSN: dsn}
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "elenco"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Enabled:    getEnvBool("MINIO_ENABLED", false),
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadAssist() Assist {
	key := getEnv("GEMINI_API_KEY", "")
	if key == "" {
		key = getEnv("API_KEY", "")
	}
	return Assist{
		APIKey:  key,
		Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		BaseURL: getEnv("GEMINI_BASE_URL", ""),
	}
}

// LoadConfig reads .env when present and falls back to the process environment.
func LoadConfig() (*Config, error) {
	envErr := godotenv.Load()
	if envErr != nil && os.IsNotExist(envErr) {
		envErr = nil
	}

	return &Config{
		ServerPort:          getEnvAsInt("SERVER_PORT", 8080),
		AppURL:              getEnv("APP_URL", "http://localhost:8080/"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Store:               LoadStore(),
		DB:                  LoadDB(),
		MinIO:               LoadMinIO(),
		Assist:              LoadAssist(),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash:   getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "12h"), 12*time.Hour),
		MaxUploadSize:       getEnvAsInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
		MaxEncodeSize:       getEnvAsInt64("MAX_ENCODE_SIZE", 3*1024*1024),
	}, envErr
}
