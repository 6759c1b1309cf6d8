package events

import (
	"context"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQPublisher struct {
	mu      sync.Mutex
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.EventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	return &rabbitMQPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event *models.Event) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("rabbitMQPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Type),
		zap.String(constvars.LoggingQueueKey, p.Queue),
	)

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestID
	}

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers: amqp091.Table{
			"message_type": "JSON",
		},
	}

	p.mu.Lock()
	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, event.Type),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Type),
	)
	return nil
}
