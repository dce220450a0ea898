package serializers

import (
	// Go Internal Packages
	"context"
	"sync"
	"time"

	// Local Packages
	config "tx-injector/config"
	errors "tx-injector/errors"
	models "tx-injector/models"

	// External Packages
	"github.com/cenkalti/backoff/v4"
	"github.com/twmb/franz-go/pkg/sr"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// SchemaRegistry is the part of *sr.Client used to register the payment schema.
type SchemaRegistry interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

// ProtobufSerializer encodes transactions as payment.Payment messages framed in the
// schema registry wire format (magic byte, schema id, message index, payload).
type ProtobufSerializer struct {
	registry   SchemaRegistry
	desc       protoreflect.MessageDescriptor
	retries    uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger

	mu     sync.Mutex
	serdes map[string]*sr.Serde
}

func NewProtobufSerializer(registry SchemaRegistry, retries uint64, logger *zap.Logger) (*ProtobufSerializer, error) {
	desc, err := PaymentDescriptor()
	if err != nil {
		return nil, err
	}
	return &ProtobufSerializer{
		registry: registry,
		desc:     desc,
		retries:  retries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		logger: logger,
		serdes: make(map[string]*sr.Serde),
	}, nil
}

// NewSchemaRegistryClient connects to the registry at url.
func NewSchemaRegistryClient(url string) (*sr.Client, error) {
	return sr.NewClient(sr.URLs(url))
}

func (s *ProtobufSerializer) Format() string { return config.FormatProtobuf }

// Subject follows the topic-record naming strategy.
func Subject(topic string) string {
	return topic + "-" + PaymentRecordName
}

func (s *ProtobufSerializer) Serialize(ctx context.Context, topic string, tx models.Transaction) ([]byte, error) {
	serde, err := s.serdeFor(ctx, topic)
	if err != nil {
		return nil, errors.SerializeErr(s.Format(), tx.TxID, err)
	}

	b, err := serde.Encode(s.message(tx))
	if err != nil {
		return nil, errors.SerializeErr(s.Format(), tx.TxID, err)
	}
	return b, nil
}

// serdeFor registers the schema for topic the first time it is seen.
func (s *ProtobufSerializer) serdeFor(ctx context.Context, topic string) (*sr.Serde, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if serde, ok := s.serdes[topic]; ok {
		return serde, nil
	}

	subject := Subject(topic)
	schema := sr.Schema{Schema: PaymentSchema, Type: sr.TypeProtobuf}

	var registered sr.SubjectSchema
	register := func() error {
		var err error
		registered, err = s.registry.CreateSchema(ctx, subject, schema)
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.retries), ctx)
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("schema registration failed, retrying", zap.String("subject", subject), zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(register, b, notify); err != nil {
		return nil, errors.E(errors.Unavailable, "cannot register schema for "+subject, err)
	}

	serde := &sr.Serde{}
	serde.Register(
		registered.ID,
		dynamicpb.NewMessage(s.desc),
		sr.EncodeFn(func(v any) ([]byte, error) {
			return proto.MarshalOptions{Deterministic: true}.Marshal(v.(*dynamicpb.Message))
		}),
		sr.Index(0),
	)
	s.serdes[topic] = serde

	s.logger.Info("registered payment schema", zap.String("subject", subject), zap.Int("id", registered.ID), zap.Int("version", registered.Version))
	return serde, nil
}

func (s *ProtobufSerializer) message(tx models.Transaction) *dynamicpb.Message {
	fields := s.desc.Fields()
	msg := dynamicpb.NewMessage(s.desc)
	msg.Set(fields.ByNumber(fieldTransactionID), protoreflect.ValueOfString(tx.TxID))
	msg.Set(fields.ByNumber(fieldAmount), protoreflect.ValueOfFloat64(tx.Amount))
	msg.Set(fields.ByNumber(fieldMethod), protoreflect.ValueOfEnum(protoreflect.EnumNumber(tx.PaymentMethod)))
	msg.Set(fields.ByNumber(fieldOrderID), protoreflect.ValueOfString(tx.OrderID))
	msg.Set(fields.ByNumber(fieldTimestamp), protoreflect.ValueOfInt64(tx.Timestamp))
	return msg
}
