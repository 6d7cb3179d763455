package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDB connects to a mongo database and returns a new instance of
// *mongo.Database. connectTimeout bounds both the connection and the initial
// ping.
func NewMongoDB(ctx context.Context, dbName string, connectionURL string, connectTimeout time.Duration, logger *slog.Logger) (*mongo.Database, error) {
	if connectionURL == "" {
		return nil, errors.New("missing mongodb database connection URL")
	}

	if dbName == "" {
		return nil, errors.New("database name is required")
	}

	// Set server API version for the client.
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(connectionURL).SetServerAPIOptions(serverAPI)
	if connectTimeout > 0 {
		opts.SetConnectTimeout(connectTimeout).SetServerSelectionTimeout(connectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}

	err = Ping(ctx, client)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("database has been connected and pinged successfully", "database", dbName)

	return client.Database(dbName), nil
}

// Ping checks that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	err := client.Ping(ctx, readpref.Primary())
	if err != nil {
		return fmt.Errorf("client.Ping error: %w", err)
	}
	return nil
}

// ShutdownMongoDB attempts to shutdown db.
func ShutdownMongoDB(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	err := db.Client().Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("client.Disconnect error: %w", err)
	}

	logger.Info("database has been shutdown successfully")

	return nil
}

// WithTransaction runs txFn inside a mongodb session transaction. Every write
// made by txFn through the session context is committed together or not at
// all.
func WithTransaction(ctx context.Context, client *mongo.Client, txFn func(ctx mongo.SessionContext) (any, error)) (any, error) {
	session, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("client.StartSession error: %w", err)
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, txFn)
}

// UniqueIndex returns an index model enforcing uniqueness of field. Documents
// without the field are not indexed.
func UniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{
			Key:   field,
			Value: 1,
		}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
}

// LookupOne returns the aggregation stages that replace the ObjectID stored at
// localField with the matching document from collection, after running the
// optional nested stages on it. Documents whose reference is missing or
// dangling end up without the field.
func LookupOne(collection, localField string, nested ...bson.D) mongo.Pipeline {
	lookup := bson.D{
		{Key: "from", Value: collection},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: IDKey},
		{Key: "as", Value: localField},
	}
	if len(nested) > 0 {
		lookup = append(lookup, bson.E{Key: "pipeline", Value: nested})
	}

	return mongo.Pipeline{
		{{Key: "$lookup", Value: lookup}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + localField},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
