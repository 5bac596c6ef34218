package events

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/micJ-r/ecommerce-app/internal/domain"
)

// Publisher announces a committed order. Publishing is best-effort: a failed
// publish is logged, never surfaced to the customer, because the order is
// already durable by the time it runs.
type Publisher interface {
	OrderCreated(ctx context.Context, o *domain.Order)
}

type KafkaPublisher struct {
	writer  *kafka.Writer
	service string
}

func NewKafkaPublisher(brokers []string, service string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicOrderCreated,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		service: service,
	}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, o *domain.Order) {
	items := make([]OrderCreatedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderCreatedItem{
			ProductID: it.ProductID.Hex(),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.service,
		CorrelationID: o.ID.Hex(),
		Payload: MustMarshal(OrderCreatedPayload{
			OrderID:     o.ID.Hex(),
			CustomerID:  o.CustomerID.Hex(),
			Items:       items,
			TotalAmount: o.TotalAmount,
			Status:      string(o.Status),
		}),
	}

	msg := kafka.Message{
		// key by order id so all events of one order keep their order
		Key:   []byte(o.ID.Hex()),
		Value: MustMarshal(ev),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(EventOrderCreated)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("events: publish order created %s: %v", o.ID.Hex(), err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *domain.Order) {}
