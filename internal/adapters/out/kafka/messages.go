package kafka

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
)

// eventMessage is the JSON body of every published event.
type eventMessage struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload,omitempty"`
}

type createdPayload struct {
	OrderID  string `json:"orderId"`
	Number   string `json:"number"`
	Status   string `json:"status"`
	Quantity int    `json:"quantity"`
}

type statusChangedPayload struct {
	OrderID  string `json:"orderId"`
	From     string `json:"from"`
	To       string `json:"to"`
	Reversed bool   `json:"reversed"`
}

func encode(event kernel.DomainEvent) ([]byte, error) {
	msg := eventMessage{
		Name:        event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
	}

	switch e := event.(type) {
	case dispatch.CreatedEvent:
		msg.Payload = createdPayload{
			OrderID:  e.OrderID.String(),
			Number:   e.Number.String(),
			Status:   e.Status.String(),
			Quantity: e.Quantity,
		}
	case dispatch.StatusChangedEvent:
		msg.Payload = statusChangedPayload{
			OrderID:  e.OrderID.String(),
			From:     e.From.String(),
			To:       e.To.String(),
			Reversed: e.Reversed,
		}
	}

	return json.Marshal(msg)
}
