package app

import (
	// Go Internal Packages
	"context"
	"fmt"

	// Local Packages
	config "tx-injector/config"
	kafka "tx-injector/kafka"
	mongodb "tx-injector/repositories/mongodb"
	redis "tx-injector/repositories/redis"
	serializers "tx-injector/serializers"
	generator "tx-injector/services/generator"
	injector "tx-injector/services/injector"

	// External Packages
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

const journalConnectRetries = 3

func producerConfig(conf config.Config) *kafka.ProducerConfig {
	return &kafka.ProducerConfig{
		Brokers:           conf.Kafka.Brokers,
		ClientID:          conf.Kafka.ClientID,
		Topic:             conf.Kafka.Topic,
		Acks:              conf.Producer.Acks,
		Retries:           conf.Producer.Retries,
		EnableIdempotence: conf.Producer.EnableIdempotence,
		MaxInFlight:       conf.Producer.MaxInFlight,
		BatchSize:         conf.Producer.BatchSize,
		Linger:            conf.Producer.Linger(),
		BufferMemory:      conf.Producer.BufferMemory,
		Compression:       conf.Producer.CompressionType,
		RequestTimeout:    conf.Producer.RequestTimeout(),
	}
}

func injectorConfig(conf config.Config) injector.Config {
	return injector.Config{
		Topic:         conf.Kafka.Topic,
		Interval:      conf.Producer.SendInterval(),
		SendCount:     conf.Producer.SendCount,
		ShutdownGrace: conf.Producer.ShutdownGrace(),
	}
}

func generatorOptions(conf config.Config) generator.Options {
	return generator.Options{
		RandomEnabled: conf.Data.RandomEnabled,
		AmountMin:     conf.Data.AmountMin,
		AmountMax:     conf.Data.AmountMax,
		OrderIDPrefix: conf.Data.OrderIDPrefix,
	}
}

func newSerializer(conf config.Config, logger *zap.Logger) (serializers.Serializer, error) {
	switch conf.Format {
	case config.FormatJSON:
		return serializers.NewJSONSerializer(), nil
	case config.FormatProtobuf:
		registry, err := serializers.NewSchemaRegistryClient(conf.SchemaRegistry.URL)
		if err != nil {
			return nil, fmt.Errorf("cannot create schema registry client: %w", err)
		}
		return serializers.NewProtobufSerializer(registry, conf.SchemaRegistry.RegisterRetries, logger)
	default:
		return nil, fmt.Errorf("unknown format %q", conf.Format)
	}
}

// journal is an injector.Journal that must be released on exit.
type journal interface {
	injector.Journal
	Close(ctx context.Context) error
}

type redisJournal struct{ *redis.DeliveryJournal }

func (j redisJournal) Close(context.Context) error { return j.DeliveryJournal.Close() }

// newJournal returns nil when journaling is disabled.
func newJournal(ctx context.Context, conf config.Config, logger *zap.Logger) (journal, error) {
	switch conf.Journal.Backend {
	case config.JournalRedis:
		client, err := redis.Connect(ctx, conf.Redis.URI, conf.Redis.Password, journalConnectRetries)
		if err != nil {
			return nil, fmt.Errorf("cannot create redis client: %w", err)
		}
		return redisJournal{redis.NewDeliveryJournal(client, conf.Journal.TTL(), logger)}, nil
	case config.JournalMongo:
		client, err := mongodb.Connect(ctx, conf.Mongo.URI, conf.Application)
		if err != nil {
			return nil, fmt.Errorf("cannot create mongo client: %w", err)
		}
		return mongodb.NewDeliveryJournal(client, conf.Mongo.Database, conf.Mongo.Collection), nil
	default:
		return nil, nil
	}
}

func newProducer(conf config.Config, metrics *kprom.Metrics, logger *zap.Logger) (*kafka.Producer, error) {
	return kafka.NewTxProducer(producerConfig(conf), metrics, logger.Named("kafka"))
}
