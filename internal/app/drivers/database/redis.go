package database

import (
	"context"
	"fmt"
	"log"
	"theracare-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	log.Println("Successfully connected to redis")
	return rdb
}
