package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/edumesh/Backend_ELearning/settings"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NO_SINGLE_DOCUMENT = "mongo: no documents in result"

var settingsData = settings.GetSettings()
var Ctx = context.TODO()

type MongoConn struct {
	client   *mongo.Client
	database string
}

func NewConnection(host, database string) *MongoConn {
	uri := fmt.Sprintf("%s://%s", settingsData.MONGO_CONNECTION, host)
	ctx, cancel := context.WithTimeout(Ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		panic(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		panic(err)
	}
	log.Printf("MongoDB connected to %s", host)
	return &MongoConn{
		client:   client,
		database: database,
	}
}

func (conn *MongoConn) GetCollection(collection string) *mongo.Collection {
	return conn.client.Database(conn.database).Collection(collection)
}

func (conn *MongoConn) GetCollections() ([]string, error) {
	collections, err := conn.client.Database(conn.database).ListCollectionNames(Ctx, struct{}{})
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (conn *MongoConn) CreateCollection(
	collection string,
	opts *options.CreateCollectionOptions,
) error {
	return conn.client.Database(conn.database).CreateCollection(Ctx, collection, opts)
}
