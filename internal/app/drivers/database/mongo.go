package database

import (
	"context"
	"fmt"
	"log"
	"theracare-service/internal/app/config"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(ctx context.Context, driverConfig *config.DriverConfig) *mongo.Client {
	connectionString := fmt.Sprintf("mongodb://%s:%s", driverConfig.MongoDB.Host, driverConfig.MongoDB.Port)
	dbOptions := options.Client().ApplyURI(connectionString)
	if driverConfig.MongoDB.Username != "" {
		dbOptions.SetAuth(options.Credential{
			Username: driverConfig.MongoDB.Username,
			Password: driverConfig.MongoDB.Password,
		})
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(connectCtx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}
