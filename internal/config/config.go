// Package config
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address   string
	LogLevel  string
	LogFormat string

	StorageDriver  string
	DBPath         string
	MongoURL       string
	MongoDatabase  string
	AllowedOrigins []string

	APIURL         string
	PageSize       int
	RequestTimeout time.Duration
}

const (
	DriverSqlite = "sqlite"
	DriverMongo  = "mongo"
)

func Load() *Config {
	godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8570"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	driver := strings.ToLower(os.Getenv("STORAGE_DRIVER"))
	if driver != DriverMongo {
		driver = DriverSqlite
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "users.db"
	}

	mongoURL := os.Getenv("MONGODB_URL")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	mongoDB := os.Getenv("MONGODB_DATABASE")
	if mongoDB == "" {
		mongoDB = "usermgmt"
	}

	origins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	apiURL := strings.TrimRight(os.Getenv("API_URL"), "/")
	if apiURL == "" {
		apiURL = "http://localhost:8570"
	}

	pageSize := 10
	if raw := os.Getenv("PAGE_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			pageSize = parsed
		}
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &Config{
		Address:        addr,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		StorageDriver:  driver,
		DBPath:         dbPath,
		MongoURL:       mongoURL,
		MongoDatabase:  mongoDB,
		AllowedOrigins: origins,
		APIURL:         apiURL,
		PageSize:       pageSize,
		RequestTimeout: timeout,
	}
}

func splitList(raw string) []string {
	out := []string{}
	for s := range strings.SplitSeq(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
