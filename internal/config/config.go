package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr     string
	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	KafkaBrokers []string
	KafkaTopic   string

	DigestInterval    time.Duration
	RetentionInterval time.Duration
}

func Load() Config {
	return Config{
		Addr:     getenv("FLOWDECK_ADDR", ":8080"),
		MySQLDSN: getenv("FLOWDECK_MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/flowdeck?charset=utf8mb4&parseTime=True"),

		RedisAddr:     getenv("FLOWDECK_REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("FLOWDECK_REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("FLOWDECK_REDIS_DB", 0),

		AccessSecret:  getenv("FLOWDECK_ACCESS_SECRET", "secret-key"),
		RefreshSecret: getenv("FLOWDECK_REFRESH_SECRET", "refresh-key"),

		SMTPHost:     getenv("FLOWDECK_SMTP_HOST", ""),
		SMTPPort:     getenvInt("FLOWDECK_SMTP_PORT", 587),
		SMTPUsername: getenv("FLOWDECK_SMTP_USERNAME", ""),
		SMTPPassword: getenv("FLOWDECK_SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("FLOWDECK_SMTP_FROM", "Flowdeck <no-reply@flowdeck.dev>"),

		KafkaBrokers: strings.Split(getenv("FLOWDECK_KAFKA_BROKERS", "127.0.0.1:9092"), ","),
		KafkaTopic:   getenv("FLOWDECK_KAFKA_TOPIC", "flowdeck.activity"),

		DigestInterval:    time.Duration(getenvInt("FLOWDECK_DIGEST_INTERVAL_SECONDS", 300)) * time.Second,
		RetentionInterval: time.Duration(getenvInt("FLOWDECK_RETENTION_INTERVAL_SECONDS", 86400)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
