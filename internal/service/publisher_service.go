package service

import (
	"encoding/json"

	"talent-search-be/internal/dto"
	"talent-search-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishSearchAudit(event dto.SearchAuditEvent) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (p *publisherService) PublishSearchAudit(event dto.SearchAuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Publisher", "failed to publish search audit event", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
