package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ticketapp/internal/shared/config"
	"ticketapp/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer reads notification messages and hands them to a Handler.
// The default handler only logs; delivery channels plug in behind it.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	handler       Handler
	log           *logger.Logger
}

// Handler processes a decoded notification message.
type Handler func(ctx context.Context, msg *Message) error

func NewConsumer(cfg *config.Config, log *logger.Logger, handler Handler) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if handler == nil {
		handler = loggingHandler(log)
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		topics:        []string{cfg.Kafka.Topic},
		handler:       handler,
		log:           log,
	}, nil
}

// Start consumes until the context is cancelled. It blocks, so run it
// in its own goroutine.
func (c *Consumer) Start(ctx context.Context) error {
	go c.handleErrors(ctx)

	handler := &groupHandler{handler: c.handler, log: c.log}
	for {
		if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("consumer group session failed", "error", err.Error())
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

func (c *Consumer) handleErrors(ctx context.Context) {
	for {
		select {
		case err, ok := <-c.consumerGroup.Errors():
			if !ok {
				return
			}
			c.log.Error("notification consumer error", "error", err.Error())
		case <-ctx.Done():
			return
		}
	}
}

func loggingHandler(log *logger.Logger) Handler {
	return func(ctx context.Context, msg *Message) error {
		log.InfoContext(ctx, "notification received",
			"type", string(msg.Type),
			"event_id", msg.EventID,
		)
		return nil
	}
}

type groupHandler struct {
	handler Handler
	log     *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			var msg Message
			if err := json.Unmarshal(message.Value, &msg); err != nil {
				h.log.Warn("skipping malformed notification",
					"topic", message.Topic,
					"offset", message.Offset,
					"error", err.Error(),
				)
				session.MarkMessage(message, "")
				continue
			}

			if err := h.handler(session.Context(), &msg); err != nil {
				h.log.Error("failed to process notification",
					"type", string(msg.Type),
					"error", err.Error(),
				)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}
