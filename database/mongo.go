package database

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ConnectMongo dials the cluster from MONGO_URI and fails fast on an
// unreachable primary so a misconfigured deployment dies at boot, not on
// the first request.
func ConnectMongo() *mongo.Client {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("MONGO_URI not set in environment")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	return client
}

// DB resolves the application database, defaulting the name when DB_NAME
// is unset.
func DB(client *mongo.Client) *mongo.Database {
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "qna"
	}
	return client.Database(name)
}

func DisconnectMongo(client *mongo.Client) {
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Println("mongo disconnect:", err)
	}
}
