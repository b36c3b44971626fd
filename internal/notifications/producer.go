package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ticketapp/internal/shared/config"
	"ticketapp/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes lifecycle notifications to Kafka. It backs the
// notifier hooks in the events and tickets services.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewProducer(cfg *config.Config, log *logger.Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	// Hash partitioner keeps all messages for one event on the same
	// partition, so consumers observe state changes in order.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    cfg.Kafka.Topic,
		log:      log,
	}, nil
}

func (p *Producer) PublishEventStateChanged(ctx context.Context, eventID, from, to string) error {
	return p.publish(ctx, &Message{
		Type:    TypeEventStateChanged,
		EventID: eventID,
		Payload: map[string]string{
			"from": from,
			"to":   to,
		},
	})
}

func (p *Producer) PublishEventCancelled(ctx context.Context, eventID, name string) error {
	return p.publish(ctx, &Message{
		Type:    TypeEventCancelled,
		EventID: eventID,
		Payload: map[string]string{
			"event_name": name,
		},
	})
}

func (p *Producer) PublishTicketSold(ctx context.Context, ticketID, eventID, seatID string, price float64) error {
	return p.publish(ctx, &Message{
		Type:    TypeTicketSold,
		EventID: eventID,
		Payload: map[string]string{
			"ticket_id": ticketID,
			"seat_id":   seatID,
			"price":     strconv.FormatFloat(price, 'f', -1, 64),
		},
	})
}

func (p *Producer) publish(ctx context.Context, msg *Message) error {
	msg.Timestamp = time.Now()

	value, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.PartitionKey()),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(msg.Type)},
			{Key: []byte("producer"), Value: []byte("ticketapp-backend")},
		},
		Timestamp: msg.Timestamp,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	if p.log != nil {
		p.log.Debug("notification published",
			"type", string(msg.Type),
			"event_id", msg.EventID,
			"partition", partition,
			"offset", offset,
		)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
