package mongodb

import (
	// Go Internal Packages
	"context"
	"time"

	// External Packages
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect connects to the mongodb server and returns the client.
func Connect(ctx context.Context, uri, appName string) (*mongo.Client, error) {
	// Set the server selection timeout to 5 seconds.
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Ping the MongoDB server to verify the connection.
	if pingErr := client.Ping(ctx, nil); pingErr != nil {
		_ = client.Disconnect(ctx)
		return nil, pingErr
	}
	return client, nil
}
