package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	models "tx-injector/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeliveryJournal keeps the latest delivery report of every key under "tx:{key}".
type DeliveryJournal struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewDeliveryJournal(client *redis.Client, ttl time.Duration, logger *zap.Logger) *DeliveryJournal {
	return &DeliveryJournal{client: client, logger: logger, ttl: ttl}
}

func Key(txID string) string {
	return fmt.Sprintf("tx:%s", txID)
}

// Record stores d as JSON. A zero ttl keeps the entry forever.
func (r *DeliveryJournal) Record(ctx context.Context, d models.Delivery) error {
	jsonData, err := json.Marshal(d)
	if err != nil {
		return err
	}

	key := Key(d.Key)
	if err = r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store delivery %s: %w", key, err)
	}
	r.logger.Debug("journaled delivery", zap.String("key", key), zap.Bool("failed", d.Failed()))
	return nil
}

func (r *DeliveryJournal) Close() error {
	return r.client.Close()
}
