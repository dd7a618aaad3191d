package service

import (
	"context"
	"encoding/json"

	"ai-docqa-be/internal/dto"
	"ai-docqa-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService listens for document lifecycle events and keeps the
// stats snapshot warm so /stats never recomputes on the request path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	stats     IStatsService
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	stats IStatsService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		stats:     stats,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DocumentEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal document event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("consumer", "Processing document event", map[string]interface{}{
		"type":   payload.Type,
		"doc_id": payload.Data["doc_id"],
	})

	if _, err := cs.stats.Recompute(ctx); err != nil {
		cs.log.Error("consumer", "Failed to refresh stats snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
