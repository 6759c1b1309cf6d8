package messaging

import (
	"fmt"
	"log"
	"theracare-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ dials the broker and declares the durable events queue.
func NewRabbitMQ(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *amqp091.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}

	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open rabbitMQ channel: %s", err.Error())
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(internalConfig.RabbitMQ.EventsQueue, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("Failed to declare rabbitMQ queue %s: %s", internalConfig.RabbitMQ.EventsQueue, err.Error())
	}

	log.Println("Successfully connected to rabbitMQ")
	return conn
}
