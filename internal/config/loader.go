package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"huddle/internal/constants"
)

func LoadConfig(configFile string) (*Config, error) {
	viper.Reset()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(configFile)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func bindEnvVariables() {
	viper.BindEnv("broker.kafka.brokers", "BROKER_KAFKA_BROKERS")
	viper.BindEnv("broker.kafka.group_id", "BROKER_KAFKA_GROUP_ID")
	viper.BindEnv("broker.kafka.message_topic", "BROKER_KAFKA_MESSAGE_TOPIC")
	viper.BindEnv("broker.kafka.dlq_topic", "BROKER_KAFKA_DLQ_TOPIC")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.read_timeout_seconds", "SERVER_READ_TIMEOUT_SECONDS")
	viper.BindEnv("server.write_timeout_seconds", "SERVER_WRITE_TIMEOUT_SECONDS")

	viper.BindEnv("logging.level", "LOGGING_LEVEL")
	viper.BindEnv("logging.format", "LOGGING_FORMAT")

	viper.BindEnv("directory.base_url", "DIRECTORY_BASE_URL")
	viper.BindEnv("directory.token", "DIRECTORY_TOKEN")

	viper.BindEnv("summarizer.enabled", "SUMMARIZER_ENABLED")
	viper.BindEnv("summarizer.api_key", "SUMMARIZER_API_KEY")
	viper.BindEnv("summarizer.model", "SUMMARIZER_MODEL")
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout_seconds", "10s")
	viper.SetDefault("server.write_timeout_seconds", "10s")
	viper.SetDefault("broker.type", "kafka")
	viper.SetDefault("broker.kafka.group_id", "huddle")
	viper.SetDefault("broker.kafka.message_topic", constants.DefaultMessageTopic)
	viper.SetDefault("analysis.window_size", constants.DefaultWindowSize)
	viper.SetDefault("analysis.window_hours", constants.DefaultWindowHours)
	viper.SetDefault("analysis.bucket_minutes", constants.DefaultBucketMinutes)
	viper.SetDefault("deduplication.on_redis_error", constants.FallbackAllow)
}

func applyEnvOverrides(cfg *Config) error {
	if brokersEnv := viper.GetString("BROKER_KAFKA_BROKERS"); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		if len(brokers) > 0 && brokers[0] != "" {
			cfg.Broker.Kafka.Brokers = brokers
		}
	}

	if token := viper.GetString("DIRECTORY_TOKEN"); token != "" {
		cfg.Directory.Token = token
	}

	if apiKey := viper.GetString("SUMMARIZER_API_KEY"); apiKey != "" {
		cfg.Summarizer.APIKey = apiKey
	}

	return nil
}
