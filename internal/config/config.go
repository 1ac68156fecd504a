package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/swap"
)

type Config struct {
	Chains     []ChainConfig
	Sync       SyncConfig
	Classifier ClassifierConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Server     ServerConfig
	Tracing    TracingConfig
	Alert      AlertConfig
	Log        LogConfig
}

// ChainConfig is one chain with an RPC endpoint configured.
type ChainConfig struct {
	Chain          model.Chain
	RPCURL         string
	RateLimitRPS   float64
	RateLimitBurst int
}

type SyncConfig struct {
	WatchedWallets []string
	Interval       time.Duration
	// InitialLookback bounds the first cycle of a wallet with no cursor.
	InitialLookback time.Duration
}

type ClassifierConfig struct {
	MaxSkipAgeBlocks    int64
	ReceiptConcurrency  int
	ProtocolFiltersFile string
	File                *FileConfig
}

type RedisConfig struct {
	URL       string
	KeyPrefix string
}

type KafkaConfig struct {
	Brokers        []string
	TradesTopic    string
	TransfersTopic string
}

type ServerConfig struct {
	HealthPort int
}

type TracingConfig struct {
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

type AlertConfig struct {
	SlackWebhookURL    string
	WebhookURL         string
	Cooldown           time.Duration
	UnhealthyThreshold int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Sync: SyncConfig{
			Interval:        time.Duration(getEnvInt("SYNC_INTERVAL_MS", 30000)) * time.Millisecond,
			InitialLookback: time.Duration(getEnvInt("SYNC_INITIAL_LOOKBACK_MIN", 60)) * time.Minute,
		},
		Classifier: ClassifierConfig{
			MaxSkipAgeBlocks:    int64(getEnvInt("MAX_SKIP_AGE_BLOCKS", swap.DefaultMaxSkipAgeBlocks)),
			ReceiptConcurrency:  getEnvInt("RECEIPT_CONCURRENCY", swap.DefaultReceiptConcurrency),
			ProtocolFiltersFile: getEnv("PROTOCOL_FILTERS_FILE", ""),
		},
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", "redis://localhost:6379"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "tradesync"),
		},
		Kafka: KafkaConfig{
			Brokers:        splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			TradesTopic:    getEnv("KAFKA_TRADES_TOPIC", "wallet-trades"),
			TransfersTopic: getEnv("KAFKA_TRANSFERS_TOPIC", "wallet-transfers"),
		},
		Server: ServerConfig{
			HealthPort: getEnvInt("HEALTH_PORT", 8080),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1.0),
		},
		Alert: AlertConfig{
			SlackWebhookURL:    getEnv("ALERT_SLACK_WEBHOOK_URL", ""),
			WebhookURL:         getEnv("ALERT_WEBHOOK_URL", ""),
			Cooldown:           time.Duration(getEnvInt("ALERT_COOLDOWN_MIN", 30)) * time.Minute,
			UnhealthyThreshold: getEnvInt("SYNC_UNHEALTHY_THRESHOLD", 5),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	for _, c := range model.EVMChains() {
		prefix := strings.ToUpper(c.String())
		url := getEnv(prefix+"_RPC_URL", "")
		if url == "" {
			continue
		}
		cfg.Chains = append(cfg.Chains, ChainConfig{
			Chain:          c,
			RPCURL:         url,
			RateLimitRPS:   getEnvFloat(prefix+"_RPC_RATE_LIMIT", 25),
			RateLimitBurst: getEnvInt(prefix+"_RPC_BURST", 50),
		})
	}

	for _, wallet := range splitList(getEnv("WATCHED_WALLETS", "")) {
		cfg.Sync.WatchedWallets = append(cfg.Sync.WatchedWallets, model.NormalizeAddress(wallet))
	}

	if path := cfg.Classifier.ProtocolFiltersFile; path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Classifier.File = file
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("at least one <CHAIN>_RPC_URL is required")
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL_MS must be positive")
	}
	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLE_RATIO must be within [0,1], got %v", c.Tracing.SampleRatio)
	}
	return nil
}

// ChainIDs lists the configured chains in load order.
func (c *Config) ChainIDs() []model.Chain {
	out := make([]model.Chain, 0, len(c.Chains))
	for _, cc := range c.Chains {
		out = append(out, cc.Chain)
	}
	return out
}

// SwapConfig builds the classifier configuration: defaults, then env knobs,
// then the optional file.
func (c *Config) SwapConfig() swap.Config {
	out := swap.DefaultConfig()
	out.MaxSkipAgeBlocks = c.Classifier.MaxSkipAgeBlocks
	out.ReceiptConcurrency = c.Classifier.ReceiptConcurrency
	if c.Classifier.File != nil {
		c.Classifier.File.apply(&out)
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
