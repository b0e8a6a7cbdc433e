package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	// ChallengeStore selects the OTP challenge backend: "dynamo" or "memory".
	ChallengeStore string

	JWTSecret     string
	JWTExpiryDays int

	AdminAuthKey string

	SMTPHost        string
	SMTPPort        int
	SMTPFrom        string
	SMTPUsername    string
	SMTPPassword    string
	SMTPTimeoutSecs int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users       string
	Challenges  string
	Messages    string
	Communities string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:       getEnv("DYNAMO_TABLE_USERS", "users"),
			Challenges:  getEnv("DYNAMO_TABLE_CHALLENGES", "otp_challenges"),
			Messages:    getEnv("DYNAMO_TABLE_MESSAGES", "chat_messages"),
			Communities: getEnv("DYNAMO_TABLE_COMMUNITIES", "communities"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "studlink-avatars"),

		ChallengeStore: getEnv("CHALLENGE_STORE", "dynamo"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiryDays: getEnvInt("JWT_EXPIRY_DAYS", 7),

		AdminAuthKey: getEnv("ADMIN_AUTH_KEY", ""),

		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:        getEnv("SMTP_FROM", "noreply@studlink.example.com"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPTimeoutSecs: getEnvInt("SMTP_TIMEOUT_SECONDS", 10),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
