package cart

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	mongoConnectTimeout   = 10 * time.Second
	mongoSelectionTimeout = 5 * time.Second

	// Cart traffic is one small document per request; a modest pool is
	// plenty and keeps connection churn down on the shared cluster.
	mongoMaxPoolSize = 50
	mongoMinPoolSize = 5
)

// ConnectMongoDB opens the cart database. Reads go to the primary: a stale
// secondary could revive lines the customer just removed.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetAppName("britannia-portal").
		SetConnectTimeout(mongoConnectTimeout).
		SetServerSelectionTimeout(mongoSelectionTimeout).
		SetMaxPoolSize(mongoMaxPoolSize).
		SetMinPoolSize(mongoMinPoolSize).
		SetReadPreference(readpref.Primary())

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}
