package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string

	JWTSecret string
	TokenTTL  time.Duration

	// Admin console credentials; the matching users are seeded on
	// first login.
	AdminPassword      string
	SuperAdminPassword string

	// Image uploads (optional).
	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	MaxUploadMB   int64

	// OTP delivery over SMTP (optional; the fixed development code is
	// used when unset).
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
	OTPTTL   time.Duration
}

func Load() (*Config, error) {
	maxMB := int64(10)
	if v := getEnv("MAX_UPLOAD_MB", "10"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxMB = n
		}
	}
	smtpPort := 587
	if v := getEnv("SMTP_PORT", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			smtpPort = n
		}
	}

	return &Config{
		Port:               getEnv("PORT", "5000"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:             getEnv("MONGODB_DB", "wordingo"),
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:           30 * 24 * time.Hour,
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin123"),
		SuperAdminPassword: getEnv("SUPERADMIN_PASSWORD", "super123"),
		S3Bucket:           getEnv("AWS_S3_BUCKET", ""),
		S3Region:           getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:        getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:        maxMB,
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           smtpPort,
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPass:           getEnv("SMTP_PASS", ""),
		SMTPFrom:           getEnv("SMTP_FROM", "no-reply@wordingo.com"),
		OTPTTL:             30 * time.Minute,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
