package config

import (
	"os"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	Services ServicesConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8083)
}

type MongoDBConfig struct {
	URI      string // URI подключения к MongoDB
	Database string // Имя базы данных
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик событий REVIEW_CREATED / REVIEW_MODERATED
}

type JWTConfig struct {
	Secret string // Секрет для проверки токенов identity-провайдера
}

type GeminiConfig struct {
	APIKey string // Ключ Gemini API (или переменная GEMINI_API_KEY)
	Model  string // Модель для классификации отзывов
}

type ServicesConfig struct {
	UsersURL     string // Базовый URL Users Service
	DirectoryURL string // Базовый URL Directory Service
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8083"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "reviews_service"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "review_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Services: ServicesConfig{
			UsersURL:     getEnv("USERS_SERVICE_URL", "http://localhost:8081"),
			DirectoryURL: getEnv("DIRECTORY_SERVICE_URL", "http://localhost:8082"),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
