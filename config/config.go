package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	JWTSecret         string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPass            string
	DBName            string
	DBNameTest        string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	MinioHost         string
	MinioPort         string
	MinioUsername     string
	MinioPassword     string
	BucketName        string
	BucketNameTest    string
	RabbitMQURL       string
	RabbitMQHost      string
	RabbitMQPort      string
	RabbitMQUser      string
	RabbitMQPass      string
	RabbitMQVhost     string
	DefaultQuotaBytes int64
	DocumentPrefix    string
	UploadRate        float64
	UploadBurst       int
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads configuration from the environment.
func InitConfig() {
	bucketNameTest := getEnv("BUCKET_NAME_TEST", "docvault-test")
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	AppConfig = Config{
		JWTSecret:      getEnv("JWT_SECRET", "l=ax+b"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "root"),
		DBPass:         getEnv("DB_PASS", "root"),
		DBName:         getEnv("DB_NAME", "DocVault"),
		DBNameTest:     getEnv("DB_NAME_TEST", "DocVault_Test"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        0,
		MinioHost:      getEnv("MINIO_HOST", "localhost"),
		MinioPort:      getEnv("MINIO_PORT", "9000"),
		MinioUsername:  getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:  getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:     getEnv("BUCKET_NAME", "docvault"),
		BucketNameTest: bucketNameTest,
		RabbitMQURL:    rabbitURL,
		RabbitMQHost:   rabbitHost,
		RabbitMQPort:   rabbitPort,
		RabbitMQUser:   rabbitUser,
		RabbitMQPass:   rabbitPass,
		RabbitMQVhost:  rabbitVhost,
		// 每个新用户默认 50MiB 存储配额
		DefaultQuotaBytes: getEnvInt64("DEFAULT_QUOTA_BYTES", 50*1024*1024),
		DocumentPrefix:    getEnv("DOCUMENT_PREFIX", "documents"),
		UploadRate:        getEnvFloat("UPLOAD_RATE", 4),
		UploadBurst:       getEnvInt("UPLOAD_BURST", 8),
	}
}
