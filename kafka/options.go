package kafka

import (
	// Go Internal Packages
	"fmt"
	"strings"
	"time"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
)

type ProducerConfig struct {
	Brokers           []string
	ClientID          string
	Topic             string
	Acks              string
	Retries           int
	EnableIdempotence bool
	MaxInFlight       int
	BatchSize         int32
	Linger            time.Duration
	BufferMemory      int
	Compression       string
	RequestTimeout    time.Duration
}

func requiredAcks(acks string) (kgo.Acks, error) {
	switch strings.ToLower(acks) {
	case "all", "-1":
		return kgo.AllISRAcks(), nil
	case "1", "leader":
		return kgo.LeaderAck(), nil
	case "0", "none":
		return kgo.NoAck(), nil
	default:
		return kgo.Acks{}, fmt.Errorf("kafka producer: invalid acks %q", acks)
	}
}

func compression(name string) (kgo.CompressionCodec, error) {
	switch strings.ToLower(name) {
	case "none":
		return kgo.NoCompression(), nil
	case "gzip":
		return kgo.GzipCompression(), nil
	case "snappy":
		return kgo.SnappyCompression(), nil
	case "lz4":
		return kgo.Lz4Compression(), nil
	case "zstd":
		return kgo.ZstdCompression(), nil
	default:
		return kgo.CompressionCodec{}, fmt.Errorf("kafka producer: invalid compression %q", name)
	}
}

// producerOpts maps the producer tunables onto franz-go client options.
func producerOpts(conf *ProducerConfig) ([]kgo.Opt, error) {
	acks, err := requiredAcks(conf.Acks)
	if err != nil {
		return nil, err
	}
	codec, err := compression(conf.Compression)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),          // Connects to Kafka brokers
		kgo.ClientID(conf.ClientID),               // Client-side tag sent with every request
		kgo.DefaultProduceTopic(conf.Topic),       // Topic used when a record has none
		kgo.RequiredAcks(acks),                    // Durability of every produce request
		kgo.RecordRetries(conf.Retries),           // Client level retry budget per record
		kgo.ProducerBatchMaxBytes(conf.BatchSize), // Max bytes per partition batch
		kgo.ProducerLinger(conf.Linger),           // Wait this long for a batch to fill
		kgo.MaxBufferedBytes(conf.BufferMemory),   // Produce blocks once this much is buffered
		kgo.ProducerBatchCompression(codec),       // Wire compression
	}
	if conf.RequestTimeout > 0 {
		opts = append(opts, kgo.ProduceRequestTimeout(conf.RequestTimeout))
	}
	// The idempotent producer already pipelines up to 5 requests per broker and
	// kgo rejects an explicit in-flight cap while it is enabled.
	if !conf.EnableIdempotence {
		opts = append(opts,
			kgo.DisableIdempotentWrite(),
			kgo.MaxProduceRequestsInflightPerBroker(conf.MaxInFlight), // Pipelining cap
		)
	}
	return opts, nil
}
