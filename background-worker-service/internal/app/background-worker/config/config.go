package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки Background Worker Service.
// Воркер читает отзывы из MongoDB Reviews Service и записывает
// агрегированные рейтинги в PostgreSQL Directory Service.
type Config struct {
	HTTP         HTTPConfig
	Database     DatabaseConfig
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	CronSchedule CronScheduleConfig
}

// HTTPConfig - настройки служебного HTTP сервера (health, metrics)
type HTTPConfig struct {
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL Directory Service
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoDBConfig - настройки подключения к MongoDB Reviews Service
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки подключения к Redis
// Используется для снимков последних записанных рейтингов
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// TTL снимка рейтинга: по истечении следующая сверка перезапишет рейтинг
	SnapshotTTL time.Duration
}

// KafkaConfig - настройки подписки на события отзывов
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// CronScheduleConfig - расписание фоновой сверки рейтингов
type CronScheduleConfig struct {
	RecalcRatings string // 5-польный cron формат (по умолчанию каждый час)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	ttlMinutes := getEnvInt("RATING_SNAPSHOT_TTL_MINUTES", 120)

	return &Config{
		HTTP: HTTPConfig{
			Port: getEnv("HTTP_PORT", "8085"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "directory_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "reviews_service"),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 2),
			SnapshotTTL: time.Duration(ttlMinutes) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "review_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "background-worker-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		CronSchedule: CronScheduleConfig{
			RecalcRatings: getEnv("CRON_RECALC_RATINGS", "0 * * * *"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
