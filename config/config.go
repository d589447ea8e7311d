package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS        = "" // e.g. "example.com,example2.com"
	MYSQL_DSN          = "" // MySQL will be used if this is set
	SQLITE_FILE        = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Scratch space for remote (S3) buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial image bucket
	CART_DIR           = ""     // Local durable cart store. Defaults to TMP_DIR/carts
	DEBUG_MODE         = true
	// Image host ceiling. Personalisation uploads are re-encoded until they
	// fit under this many bytes.
	UPLOAD_MAX_BYTES = 10 * 1024 * 1024
	// Longest edge of the preview used for on-screen cropping
	PREVIEW_MAX_EDGE = 800
)

func init() {
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("CART_DIR", &CART_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("UPLOAD_MAX_BYTES", &UPLOAD_MAX_BYTES)
	readEnvInt("PREVIEW_MAX_EDGE", &PREVIEW_MAX_EDGE)

	if CART_DIR == "" {
		CART_DIR = TMP_DIR + "/carts"
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
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
