package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	BIND_ADDRESS        = "0.0.0.0:8080"
	TLS_DOMAINS         = ""  // e.g. "example.com,example2.com"
	MYSQL_DSN           = ""  // MySQL will be used if this is set
	POSTGRES_DSN        = ""  // Postgres will be used if MYSQL_DSN is not configured and this is set
	SQLITE_FILE         = "blog.db"
	DEBUG_MODE          = false
	LOG_LEVEL           = "info"
	SESSION_KEY         = "" // random on every start if empty
	SESSION_MAX_AGE     = 30 * 86400
	LOGIN_URL           = "/auth/login/"
	POSTS_PER_PAGE      = 10
	INDEX_CACHE_SECONDS = 20
	THUMB_SIZE          = 960
	MAX_UPLOAD_SIZE     = 5 << 20
	// Media goes to MEDIA_ROOT on disk unless S3_BUCKET is configured
	MEDIA_ROOT  = "media"
	MEDIA_URL   = "/media/"
	S3_BUCKET   = ""
	S3_REGION   = "us-east-1"
	S3_ENDPOINT = "" // for S3 compatible services (minio, etc)
	S3_KEY      = ""
	S3_SECRET   = ""
	S3_PREFIX   = ""
)

func init() {
	Load()
}

// Load (re)reads the environment. Values from a local .env file are used
// only for variables that are not already set.
func Load() {
	_ = godotenv.Load()

	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("LOGIN_URL", &LOGIN_URL)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvInt("INDEX_CACHE_SECONDS", &INDEX_CACHE_SECONDS)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvInt("MAX_UPLOAD_SIZE", &MAX_UPLOAD_SIZE)
	readEnvString("MEDIA_ROOT", &MEDIA_ROOT)
	readEnvString("MEDIA_URL", &MEDIA_URL)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)

	if POSTS_PER_PAGE < 1 {
		POSTS_PER_PAGE = 10
	}
	if !strings.HasSuffix(MEDIA_URL, "/") {
		MEDIA_URL += "/"
	}
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
