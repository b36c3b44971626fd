package notifications

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeEventStateChanged MessageType = "event.state_changed"
	TypeEventCancelled    MessageType = "event.cancelled"
	TypeTicketSold        MessageType = "ticket.sold"
)

// Message is the wire format published to the notifications topic.
// Messages for the same event share a partition key so consumers see
// them in order.
type Message struct {
	Type      MessageType       `json:"type"`
	EventID   string            `json:"event_id"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload,omitempty"`
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *Message) PartitionKey() string {
	return m.EventID
}
