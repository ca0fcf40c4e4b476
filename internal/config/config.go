package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"teammatch/internal/taxonomy"
)

// Config holds all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AppName   string              `mapstructure:"APP_NAME"`
	LogLevel  string              `mapstructure:"LOG_LEVEL"`
	Server    ServerConfig        `mapstructure:"SERVER"`
	Session   SessionConfig       `mapstructure:"SESSION"`
	Database  DatabaseConfig      `mapstructure:"DATABASE"`
	Storage   StorageConfig       `mapstructure:"STORAGE"`
	History   HistoryConfig       `mapstructure:"HISTORY"`
	Redis     RedisConfig         `mapstructure:"REDIS"`
	Kafka     KafkaConfig         `mapstructure:"KAFKA"`
	WebSocket WebSocketConfig     `mapstructure:"WEBSOCKET"`
	Taxonomy  []taxonomy.Category `mapstructure:"TAXONOMY"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host            string        `mapstructure:"HOST"`
	Port            string        `mapstructure:"PORT"`
	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// SessionConfig holds configuration for the cookie session store.
type SessionConfig struct {
	Name       string `mapstructure:"NAME"`
	SecretKey  string `mapstructure:"SECRET_KEY"`
	MaxAgeDays int    `mapstructure:"MAX_AGE_DAYS"`
	Secure     bool   `mapstructure:"SECURE"`
}

// MaxAge returns the session lifetime in seconds.
func (c SessionConfig) MaxAge() int {
	return c.MaxAgeDays * 24 * int(time.Hour/time.Second)
}

// DatabaseConfig holds configuration for the database.
type DatabaseConfig struct {
	Type       string `mapstructure:"TYPE"` // "postgres", "sqlite"
	Host       string `mapstructure:"HOST"`
	Port       int    `mapstructure:"PORT"`
	User       string `mapstructure:"USER"`
	Password   string `mapstructure:"PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	SSLMode    string `mapstructure:"SSL_MODE"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	LogSQL     bool   `mapstructure:"LOG_SQL"`
}

// StorageConfig holds configuration for profile picture storage.
type StorageConfig struct {
	Type          string   `mapstructure:"TYPE"` // "local", "s3"
	LocalPath     string   `mapstructure:"LOCAL_PATH"`
	BaseURL       string   `mapstructure:"BASE_URL"`
	MaxFileSizeMB int64    `mapstructure:"MAX_FILE_SIZE_MB"`
	S3            S3Config `mapstructure:"S3"`
}

// S3Config holds configuration for an S3 compatible bucket.
type S3Config struct {
	BucketName      string `mapstructure:"BUCKET_NAME"`
	Region          string `mapstructure:"REGION"`
	AccessKeyID     string `mapstructure:"ACCESS_KEY_ID"`
	SecretAccessKey string `mapstructure:"SECRET_ACCESS_KEY"`
	Endpoint        string `mapstructure:"ENDPOINT"`   // For S3 compatible storage like MinIO
	PublicURL       string `mapstructure:"PUBLIC_URL"` // Prefix used to build picture URLs
}

// HistoryConfig selects the search history backend.
type HistoryConfig struct {
	Backend   string `mapstructure:"BACKEND"` // "database", "redis"
	KeyPrefix string `mapstructure:"KEY_PREFIX"`
}

// RedisConfig holds configuration for Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"ADDR"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// KafkaConfig holds configuration for Kafka.
type KafkaConfig struct {
	Enabled            bool     `mapstructure:"ENABLED"`
	Brokers            []string `mapstructure:"BROKERS"`
	ClientID           string   `mapstructure:"CLIENT_ID"`
	Protocol           string   `mapstructure:"PROTOCOL"`
	FriendRequestTopic string   `mapstructure:"FRIEND_REQUEST_TOPIC"`
	ConsumerGroup      string   `mapstructure:"CONSUMER_GROUP"`
}

// WebSocketConfig holds configuration for notification sockets.
type WebSocketConfig struct {
	WriteWaitSeconds    int `mapstructure:"WRITE_WAIT_SECONDS"`
	PongWaitSeconds     int `mapstructure:"PONG_WAIT_SECONDS"`
	PingPeriodSeconds   int `mapstructure:"PING_PERIOD_SECONDS"`
	MaxMessageSizeBytes int `mapstructure:"MAX_MESSAGE_SIZE_BYTES"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "teammatch")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SERVER.HOST", "0.0.0.0")
	v.SetDefault("SERVER.PORT", "5000")
	v.SetDefault("SERVER.READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER.WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("SESSION.NAME", "teammatch-session")
	v.SetDefault("SESSION.SECRET_KEY", "your-secret-key")
	v.SetDefault("SESSION.MAX_AGE_DAYS", 7)
	v.SetDefault("SESSION.SECURE", false)

	v.SetDefault("DATABASE.TYPE", "postgres")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "password")
	v.SetDefault("DATABASE.DB_NAME", "hackathon")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.SQLITE_PATH", "hackathon.db")
	v.SetDefault("DATABASE.LOG_SQL", false)

	v.SetDefault("STORAGE.TYPE", "local")
	v.SetDefault("STORAGE.LOCAL_PATH", "./static/uploads")
	v.SetDefault("STORAGE.BASE_URL", "/static/uploads")
	v.SetDefault("STORAGE.MAX_FILE_SIZE_MB", 5)
	v.SetDefault("STORAGE.S3.REGION", "us-east-1")

	v.SetDefault("HISTORY.BACKEND", "database")
	v.SetDefault("HISTORY.KEY_PREFIX", "search:history:")

	v.SetDefault("REDIS.ADDR", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)

	v.SetDefault("KAFKA.ENABLED", false)
	v.SetDefault("KAFKA.BROKERS", []string{"localhost:9092"})
	v.SetDefault("KAFKA.CLIENT_ID", "teammatch")
	v.SetDefault("KAFKA.PROTOCOL", "plaintext")
	v.SetDefault("KAFKA.FRIEND_REQUEST_TOPIC", "teammatch-friend-requests")
	v.SetDefault("KAFKA.CONSUMER_GROUP", "teammatch-notifier")

	v.SetDefault("WEBSOCKET.WRITE_WAIT_SECONDS", 10)
	v.SetDefault("WEBSOCKET.PONG_WAIT_SECONDS", 60)
	v.SetDefault("WEBSOCKET.PING_PERIOD_SECONDS", 54) // (60 * 9) / 10
	v.SetDefault("WEBSOCKET.MAX_MESSAGE_SIZE_BYTES", 512)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// SERVER_PORT overrides Server.Port, SESSION_SECRET_KEY overrides Session.SecretKey.
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Defaults cover every key, so a missing file is fine.
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if len(config.Taxonomy) == 0 {
		config.Taxonomy = taxonomy.DefaultCategories()
	}
	return config, nil
}
