package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// KafkaSender публикует уведомления в топик Kafka
type KafkaSender struct {
	writer *kafka.Writer
}

// NewKafkaSender создает writer для указанных брокеров и топика
func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	return &KafkaSender{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Name имя канала для логов
func (s *KafkaSender) Name() string {
	return "kafka"
}

// Send публикует уведомление. Ключ сообщения - ID бронирования,
// поэтому события одного бронирования попадают в одну партицию.
func (s *KafkaSender) Send(ctx context.Context, notice *CancellationNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("kafka: encode notice: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(notice.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(notice.Kind)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}
	return nil
}

// Close закрывает writer
func (s *KafkaSender) Close() error {
	return s.writer.Close()
}

// injectTraceHeaders добавляет W3C trace context в заголовки сообщения
func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}
