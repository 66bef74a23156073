package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize int

	// NWS zip code lookup configuration.
	NWSBaseURL     string
	NWSTimeout     time.Duration
	CoordCacheSize int
	CoordFile      string

	// USNO astronomical data configuration.
	USNOBaseURL         string
	USNOTimeout         time.Duration
	USNORequestInterval time.Duration
	USNOMaxDays         int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	nwsTimeout, err := parsePositiveDuration("NWS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	usnoTimeout, err := parsePositiveDuration("USNO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	usnoInterval, err := parsePositiveDuration("USNO_REQUEST_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}
	maxDays, err := parseIntInRange("USNO_MAX_DAYS", 30, 1, 366)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-sun-tables"),
		KafkaSinkTopic:   sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "sun-times"),
		KafkaGroupID:     sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "sun-table-etl"),
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		BatchSize:        batchSize,

		NWSBaseURL:     sharedcfg.EnvOrDefault("NWS_BASE_URL", "https://graphical.weather.gov/xml/sample_products/browser_interface/ndfdXMLclient.php"),
		NWSTimeout:     nwsTimeout,
		CoordCacheSize: parseCoordCacheSize(),
		CoordFile:      sharedcfg.EnvOrDefault("COORD_FILE", "latlong.txt"),

		USNOBaseURL:         sharedcfg.EnvOrDefault("USNO_BASE_URL", "https://aa.usno.navy.mil"),
		USNOTimeout:         usnoTimeout,
		USNORequestInterval: usnoInterval,
		USNOMaxDays:         maxDays,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer in [%d, %d]", key, lo, hi)
	}
	return n, nil
}

func parseCoordCacheSize() int {
	if s := os.Getenv("COORD_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
