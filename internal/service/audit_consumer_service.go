package service

import (
	"context"
	"encoding/json"

	"talent-search-be/internal/dto"
	"talent-search-be/internal/model"
	"talent-search-be/internal/pkg/logger"
	"talent-search-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/datatypes"
)

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains search audit events off the in-process bus
// and persists them. Persistence failures are nacked for redelivery;
// malformed payloads are acked so they cannot loop forever.
type auditConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	searchLog contract.SearchLogRepository
	logger    logger.ILogger
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	searchLog contract.SearchLogRepository,
	log logger.ILogger,
) IAuditConsumerService {
	return &auditConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		searchLog: searchLog,
		logger:    log,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
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

func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event dto.SearchAuditEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("AuditConsumer", "failed to unmarshal audit event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	parsed := make(datatypes.JSONMap, len(event.ParsedTraits))
	for key, weight := range event.ParsedTraits {
		parsed[key] = weight
	}

	record := &model.SearchLog{
		SessionId:   event.SessionId,
		Query:       event.Query,
		Intent:      event.Intent,
		SubIntent:   event.SubIntent,
		ParsedQuery: parsed,
		ResultCount: event.ResultCount,
		DurationMs:  event.DurationMs,
	}

	if err := cs.searchLog.Create(ctx, record); err != nil {
		cs.logger.Error("AuditConsumer", "failed to persist search log", map[string]interface{}{
			"error":   err.Error(),
			"session": event.SessionId,
		})
		msg.Nack()
		return
	}

	cs.logger.Info("AuditConsumer", "search turn recorded", map[string]interface{}{
		"session": event.SessionId,
		"intent":  event.Intent,
		"results": event.ResultCount,
	})
	msg.Ack()
}
