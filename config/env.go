// Package config exposes typed accessors over the process environment.
//
// Values are read from the real environment first; a .env file in the
// working directory fills the gaps (never overriding exported variables).
// Every accessor has a development-friendly default so the server boots
// with zero configuration.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultMongoDB    = "food_delivery"
	defaultRedisAddr  = "localhost:6379"
	defaultJWTSecret  = "change-me-in-production"
	defaultJWTExpire  = "168h" // 7 days, matching the admin panel's session length
	defaultAppPort    = "5000"
	defaultAppEnv     = "development"
	defaultClientURL  = "http://localhost:5173"
	defaultUploadDir  = "uploads"
	defaultMaxUpload  = 5 << 20 // 5 MB
	defaultStorageURL = "http://localhost:5000/uploads"
)

var loadOnce sync.Once

// Load reads the optional .env file. Safe to call many times; only the
// first call does work. Missing .env is not an error.
func Load() {
	loadOnce.Do(func() {
		_ = godotenv.Load()
	})
}

func get(key, fallback string) string {
	Load()
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func AppPort() string { return get("PORT", defaultAppPort) }
func AppEnv() string  { return get("APP_ENV", defaultAppEnv) }

// Production reports whether the server runs in production mode.
// Controls log format and whether error details leak to clients.
func Production() bool {
	env := strings.ToLower(AppEnv())
	return env == "production" || env == "prod"
}

func ClientURL() string { return get("CLIENT_URL", defaultClientURL) }

// ── Database ─────────────────────────────────────────────────────────────────

func MongoURI() string      { return get("MONGODB_URI", defaultMongoURI) }
func MongoDatabase() string { return get("MONGODB_DB", defaultMongoDB) }

// ── Cache ────────────────────────────────────────────────────────────────────

func RedisAddr() string     { return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { return get("REDIS_PASSWORD", "") }

// ── Auth ─────────────────────────────────────────────────────────────────────

func JWTSecret() string { return get("JWT_SECRET", defaultJWTSecret) }
func JWTExpire() string { return get("JWT_EXPIRE", defaultJWTExpire) }

// ── Uploads / storage ────────────────────────────────────────────────────────

func StorageDisk() string      { return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { return get("STORAGE_LOCAL_ROOT", defaultUploadDir) }
func StorageURL() string       { return get("STORAGE_URL", defaultStorageURL) }

func StorageS3Bucket() string   { return get("S3_BUCKET", "") }
func StorageS3Region() string   { return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { return get("S3_KEY", "") }
func StorageS3Secret() string   { return get("S3_SECRET", "") }
func StorageS3Endpoint() string { return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { return get("S3_URL", "") }

// MaxUploadBytes caps multipart upload size (MAX_FILE_SIZE, bytes).
func MaxUploadBytes() int64 {
	n, err := strconv.ParseInt(get("MAX_FILE_SIZE", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxUpload
	}
	return n
}

// AllowedFileTypes returns the upload allow-list as a comma-separated set of
// extensions and/or MIME types. Empty means the built-in image defaults.
func AllowedFileTypes() []string {
	raw := get("ALLOWED_FILE_TYPES", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Get reads any environment key with a fallback. Prefer the typed accessors.
func Get(key, fallback string) string { return get(key, fallback) }
