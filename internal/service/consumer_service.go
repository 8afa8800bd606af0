package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"market-research-be/internal/constant"
	"market-research-be/internal/pkg/logger"
	"market-research-be/pkg/events"
	natspkg "market-research-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains pipeline events from the in-process bus, logs
// them, and forwards them to NATS when a bus is configured. It is the
// only observer; the pipeline itself never blocks on it.
type consumerService struct {
	pubSub  *gochannel.GoChannel
	sysLog  logger.ILogger
	natsPub *natspkg.Publisher // nil when NATS is not configured
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	sysLog logger.ILogger,
	natsPub *natspkg.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:  pubSub,
		sysLog:  sysLog,
		natsPub: natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	topics := []string{
		constant.TopicRetrievalCompleted,
		constant.TopicReportGenerated,
	}

	for _, topic := range topics {
		messages, err := cs.pubSub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go func() {
			for msg := range messages {
				cs.processMessage(ctx, msg)
			}
		}()
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope struct {
		Type       string                 `json:"type"`
		OccurredAt string                 `json:"occurred_at"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.sysLog.Info("events", envelope.Type, envelope.Data)

	if cs.natsPub != nil {
		occurredAt, err := time.Parse(time.RFC3339, envelope.OccurredAt)
		if err != nil {
			occurredAt = time.Now()
		}
		evt := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: occurredAt,
		}
		if err := cs.natsPub.Publish(ctx, evt); err != nil {
			cs.sysLog.Warn("events", "Failed to forward event to NATS", map[string]interface{}{
				"type":  envelope.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
