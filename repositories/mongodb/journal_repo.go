package mongodb

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "tx-injector/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DeliveryJournal struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewDeliveryJournal(client *mongo.Client, database, collection string) *DeliveryJournal {
	return &DeliveryJournal{Client: client, Database: database, Collection: collection}
}

// Record upserts a single delivery report keyed by transaction id
func (r *DeliveryJournal) Record(ctx context.Context, d models.Delivery) error {
	collection := r.Client.Database(r.Database).Collection(r.Collection)
	opts := options.Replace().SetUpsert(true)
	_, err := collection.ReplaceOne(ctx, bson.M{"_id": d.Key}, d, opts)
	return err
}

func (r *DeliveryJournal) Close(ctx context.Context) error {
	return r.Client.Disconnect(ctx)
}
