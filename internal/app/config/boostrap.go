package config

import (
	"context"
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Postgres       *sql.DB
	MongoDB        *mongo.Client
	Redis          *redis.Client
	Minio          *minio.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}

// Shutdown closes every live driver. MongoDB is optional and only closed when connected.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	err = b.Postgres.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Postgres")

	if b.MongoDB != nil {
		err = b.MongoDB.Disconnect(ctx)
		if err != nil {
			return err
		}
		log.Println("Successfully closing MongoDB")
	}

	err = b.Logger.Sync()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
