package kafka

import (
	// Go Internal Packages
	"context"
	"sync"
	"time"

	// Local Packages
	models "tx-injector/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// Client is the subset of *kgo.Client the producer depends on.
type Client interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

type Producer struct {
	Client Client
	Config *ProducerConfig
	Logger *zap.Logger

	closeOnce sync.Once
}

// NewTxProducer creates a franz-go client tuned by conf. Records are buffered and sent by
// the client's own goroutines; Publish only hands them over.
func NewTxProducer(conf *ProducerConfig, metrics *kprom.Metrics, logger *zap.Logger) (*Producer, error) {
	opts, err := producerOpts(conf)
	if err != nil {
		return nil, err
	}
	if metrics != nil {
		opts = append(opts, kgo.WithHooks(metrics)) // Attaches monitoring hooks
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return NewProducerWithClient(client, conf, logger), nil
}

func NewProducerWithClient(client Client, conf *ProducerConfig, logger *zap.Logger) *Producer {
	return &Producer{Client: client, Config: conf, Logger: logger}
}

// Publish submits record asynchronously. onDelivery runs once on a client goroutine with
// the partition and offset the broker assigned, or with the error that failed the record.
// Publish blocks only while the client buffer is full.
func (p *Producer) Publish(ctx context.Context, record models.Record, onDelivery func(models.Delivery, error)) {
	kr := &kgo.Record{
		Topic: record.Topic,
		Key:   record.Key,
		Value: record.Value,
	}
	p.Client.Produce(ctx, kr, func(r *kgo.Record, err error) {
		onDelivery(models.Delivery{
			Topic:     r.Topic,
			Partition: r.Partition,
			Offset:    r.Offset,
			Key:       string(r.Key),
			Timestamp: time.Now().UnixMilli(),
		}, err)
	})
}

// Close flushes buffered records, bounded by ctx, then releases the client connections.
// Only the first call does anything.
func (p *Producer) Close(ctx context.Context) error {
	var err error
	p.closeOnce.Do(func() {
		if err = p.Client.Flush(ctx); err != nil {
			p.Logger.Warn("flush interrupted, unsent records are dropped", zap.Error(err))
		}
		p.Client.Close()
		p.Logger.Info("kafka producer closed", zap.String("client_id", p.Config.ClientID))
	})
	return err
}
