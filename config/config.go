package config

import (
	// Go Internal Packages
	"strings"
	"time"

	// Local Packages
	errors "tx-injector/errors"
)

const (
	FormatJSON     = "json"
	FormatProtobuf = "protobuf"

	JournalNone  = "none"
	JournalRedis = "redis"
	JournalMongo = "mongodb"
)

var DefaultConfig = []byte(`
application: "transaction-producer"
format: "protobuf"

logger:
  level: "info"

is_prod_mode: false

kafka:
  brokers:
    - "localhost:9092"
  client_id: "transaction-producer"
  topic: "Transactions"

producer:
  send_interval_seconds: 30
  send_count: -1
  shutdown_grace_seconds: 10
  acks: "all"
  retries: 3
  enable_idempotence: true
  max_in_flight_requests_per_connection: 5
  batch_size: 16384
  linger_ms: 10
  buffer_memory: 33554432
  compression_type: "snappy"
  request_timeout_ms: 30000

data:
  random_enabled: true
  amount_min: 10.0
  amount_max: 1000.0
  order_id_prefix: "CMD-"

schema_registry:
  url: "http://localhost:8085"
  register_retries: 3

metrics:
  enabled: false
  addr: ":9091"
  namespace: "txinjector"

journal:
  backend: "none"
  ttl_seconds: 86400

redis:
  uri: "localhost:6379"
  password: ""

mongo:
  uri: "mongodb://localhost:27017"
  database: "injector"
  collection: "deliveries"
`)

type Config struct {
	Application    string         `koanf:"application"`
	Format         string         `koanf:"format"`
	Logger         Logger         `koanf:"logger"`
	IsProdMode     bool           `koanf:"is_prod_mode"`
	Kafka          Kafka          `koanf:"kafka"`
	Producer       Producer       `koanf:"producer"`
	Data           Data           `koanf:"data"`
	SchemaRegistry SchemaRegistry `koanf:"schema_registry"`
	Metrics        Metrics        `koanf:"metrics"`
	Journal        Journal        `koanf:"journal"`
	Redis          Redis          `koanf:"redis"`
	Mongo          Mongo          `koanf:"mongo"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Kafka struct {
	Brokers  []string `koanf:"brokers"`
	ClientID string   `koanf:"client_id"`
	Topic    string   `koanf:"topic"`
}

type Producer struct {
	SendIntervalSeconds  int    `koanf:"send_interval_seconds"`
	SendCount            int64  `koanf:"send_count"`
	ShutdownGraceSeconds int    `koanf:"shutdown_grace_seconds"`
	Acks                 string `koanf:"acks"`
	Retries              int    `koanf:"retries"`
	EnableIdempotence    bool   `koanf:"enable_idempotence"`
	MaxInFlight          int    `koanf:"max_in_flight_requests_per_connection"`
	BatchSize            int32  `koanf:"batch_size"`
	LingerMs             int    `koanf:"linger_ms"`
	BufferMemory         int    `koanf:"buffer_memory"`
	CompressionType      string `koanf:"compression_type"`
	RequestTimeoutMs     int    `koanf:"request_timeout_ms"`
}

type Data struct {
	RandomEnabled bool    `koanf:"random_enabled"`
	AmountMin     float64 `koanf:"amount_min"`
	AmountMax     float64 `koanf:"amount_max"`
	OrderIDPrefix string  `koanf:"order_id_prefix"`
}

type SchemaRegistry struct {
	URL             string `koanf:"url"`
	RegisterRetries uint64 `koanf:"register_retries"`
}

type Metrics struct {
	Enabled   bool   `koanf:"enabled"`
	Addr      string `koanf:"addr"`
	Namespace string `koanf:"namespace"`
}

type Journal struct {
	Backend    string `koanf:"backend"`
	TTLSeconds int    `koanf:"ttl_seconds"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

type Mongo struct {
	URI        string `koanf:"uri"`
	Database   string `koanf:"database"`
	Collection string `koanf:"collection"`
}

func (p Producer) SendInterval() time.Duration {
	return time.Duration(p.SendIntervalSeconds) * time.Second
}

func (p Producer) ShutdownGrace() time.Duration {
	return time.Duration(p.ShutdownGraceSeconds) * time.Second
}

func (p Producer) Linger() time.Duration {
	return time.Duration(p.LingerMs) * time.Millisecond
}

func (p Producer) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutMs) * time.Millisecond
}

func (j Journal) TTL() time.Duration {
	return time.Duration(j.TTLSeconds) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Format != FormatJSON && c.Format != FormatProtobuf {
		ve.Add("format", "must be one of json, protobuf")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}

	if len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Kafka.ClientID == "" {
		ve.Add("kafka.client_id", "cannot be empty")
	}
	if c.Kafka.Topic == "" {
		ve.Add("kafka.topic", "cannot be empty")
	}

	c.validateProducer(ve)
	c.validateData(ve)

	if c.Format == FormatProtobuf && c.SchemaRegistry.URL == "" {
		ve.Add("schema_registry.url", "cannot be empty")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		ve.Add("metrics.addr", "cannot be empty")
	}

	switch c.Journal.Backend {
	case JournalNone:
	case JournalRedis:
		if c.Redis.URI == "" {
			ve.Add("redis.uri", "cannot be empty")
		}
	case JournalMongo:
		if c.Mongo.URI == "" {
			ve.Add("mongo.uri", "cannot be empty")
		}
		if c.Mongo.Database == "" || c.Mongo.Collection == "" {
			ve.Add("mongo.collection", "database and collection cannot be empty")
		}
	default:
		ve.Add("journal.backend", "must be one of none, redis, mongodb")
	}

	return ve.Err()
}

func (c *Config) validateProducer(ve *errors.ValidationErrors) {
	p := c.Producer

	if p.SendIntervalSeconds < 1 {
		ve.Add("producer.send_interval_seconds", "must be at least 1")
	}
	if p.ShutdownGraceSeconds < 1 {
		ve.Add("producer.shutdown_grace_seconds", "must be at least 1")
	}

	acks := strings.ToLower(p.Acks)
	switch acks {
	case "all", "-1", "1", "leader", "0", "none":
	default:
		ve.Add("producer.acks", "must be one of all, 1, 0")
	}
	if p.EnableIdempotence && acks != "all" && acks != "-1" {
		ve.Add("producer.acks", "must be all when idempotence is enabled")
	}
	if p.EnableIdempotence && (p.MaxInFlight < 1 || p.MaxInFlight > 5) {
		ve.Add("producer.max_in_flight_requests_per_connection", "must be between 1 and 5 when idempotence is enabled")
	} else if p.MaxInFlight < 1 {
		ve.Add("producer.max_in_flight_requests_per_connection", "must be at least 1")
	}

	if p.Retries < 0 {
		ve.Add("producer.retries", "cannot be negative")
	}
	if p.BatchSize <= 0 {
		ve.Add("producer.batch_size", "must be positive")
	}
	if p.LingerMs < 0 {
		ve.Add("producer.linger_ms", "cannot be negative")
	}
	if p.BufferMemory <= 0 {
		ve.Add("producer.buffer_memory", "must be positive")
	}
	if p.RequestTimeoutMs <= 0 {
		ve.Add("producer.request_timeout_ms", "must be positive")
	}

	switch strings.ToLower(p.CompressionType) {
	case "none", "gzip", "snappy", "lz4", "zstd":
	default:
		ve.Add("producer.compression_type", "must be one of none, gzip, snappy, lz4, zstd")
	}
}

func (c *Config) validateData(ve *errors.ValidationErrors) {
	d := c.Data

	if d.AmountMin > d.AmountMax {
		ve.Add("data.amount_min", "cannot exceed data.amount_max")
	} else if d.RandomEnabled && d.AmountMin == d.AmountMax {
		ve.Add("data.amount_max", "must be greater than data.amount_min when random data is enabled")
	}
}
