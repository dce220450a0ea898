package redis

import (
	// Go Internal Packages
	"context"
	"testing"
	"time"

	// Local Packages
	models "tx-injector/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "tx:0b7c2f3e", Key("0b7c2f3e"))
}

func TestRecordUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	j := NewDeliveryJournal(client, time.Minute, zap.NewNop())
	defer func() { _ = j.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := j.Record(ctx, models.Delivery{Topic: "Transactions", Key: "0b7c2f3e"})
	assert.ErrorContains(t, err, "tx:0b7c2f3e")
}
