package service

import (
	"context"
	"encoding/json"

	"station-chat-be/internal/dto"
	"station-chat-be/internal/pkg/logger"
	"station-chat-be/internal/repository/jsonstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists a store snapshot whenever a station-updated
// event arrives, keeping status mutations off the request path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	stations  *jsonstore.StationStore
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	stations *jsonstore.StationStore,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		stations:  stations,
		logger:    sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.StationUpdatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal station update", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads never become valid, drop them
		return
	}

	if err := cs.stations.SaveSnapshot(); err != nil {
		cs.logger.Error("consumer", "failed to persist snapshot", map[string]interface{}{
			"error":   err.Error(),
			"station": payload.StationId,
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "persisted station snapshot", map[string]interface{}{
		"station": payload.StationId,
		"status":  payload.Status,
	})
	msg.Ack()
}
