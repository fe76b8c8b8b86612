package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"robot/config"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// InitMongoDB initializes the MongoDB connection. The database is optional
// for the core; when it is down the robot runs on in-process memory only.
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := config.GetMongoDBURI()
	clientOptions := options.Client().ApplyURI(uri)

	var err error
	client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	database = client.Database("robot-agent")

	log.Println("Connected to MongoDB successfully")
	return nil
}

// GetCollection returns a MongoDB collection
func GetCollection(collectionName string) *mongo.Collection {
	return database.Collection(collectionName)
}

// GetClient returns the MongoDB client
func GetClient() *mongo.Client {
	return client
}

// Close closes the MongoDB connection
func Close() error {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
	return nil
}
