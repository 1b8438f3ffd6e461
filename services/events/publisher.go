package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"slotbook/models"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes appointment events to one topic per event type,
// keyed by appointment ID so a single appointment's events stay ordered.
type KafkaPublisher struct {
	Writer      MessageWriter
	TopicPrefix string
	Logger      *zap.Logger
}

// NewKafkaPublisher returns a publisher for the comma separated broker list.
func NewKafkaPublisher(brokers string, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(SplitBrokers(brokers)...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{Writer: w, TopicPrefix: "slotbook.", Logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt models.AppointmentEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(evt.Type)},
	}
	carrier := headerCarrier{headers: &headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	msg := kafka.Message{
		Topic:   p.TopicPrefix + evt.Type,
		Key:     []byte(evt.AppointmentID),
		Value:   body,
		Headers: headers,
	}
	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}
	p.Logger.Debug("Event published", zap.String("type", evt.Type), zap.String("appointmentID", evt.AppointmentID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// LogPublisher is used when no brokers are configured.
type LogPublisher struct {
	Logger *zap.Logger
}

func (p *LogPublisher) Publish(ctx context.Context, evt models.AppointmentEvent) error {
	p.Logger.Info("Appointment event",
		zap.String("type", evt.Type),
		zap.String("appointmentID", evt.AppointmentID),
		zap.String("providerID", evt.ProviderID),
		zap.String("status", string(evt.Status)))
	return nil
}

func (p *LogPublisher) Close() error { return nil }

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c headerCarrier) Set(key, value string) {
	for i := range *c.headers {
		if (*c.headers)[i].Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = headerCarrier{}
