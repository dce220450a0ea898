package serializers

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "tx-injector/models"
)

// Serializer turns a transaction into the payload published to topic.
type Serializer interface {
	Format() string
	Serialize(ctx context.Context, topic string, tx models.Transaction) ([]byte, error)
}
