package notifications

import (
	"context"
	"fmt"
	"time"

	"eventcraft/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer interface defines the contract for publishing event lifecycle
// messages
type Producer interface {
	PublishEventCreated(ctx context.Context, message *EventCreatedMessage) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka producer
type KafkaProducerConfig struct {
	Brokers          []string
	EventTopic       string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		EventTopic:       "events-created",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaProducer publishes event lifecycle messages to Kafka
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger
}

// NewKafkaProducer creates a new Kafka producer
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Idempotent producers require a single in-flight request
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one staffer's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log := logger.GetDefault()
	log.Info("Kafka producer created", "brokers", config.Brokers, "topic", config.EventTopic)

	return &KafkaProducer{
		producer: producer,
		config:   config,
		log:      log,
	}, nil
}

// PublishEventCreated publishes a single event-created message to Kafka
func (kp *KafkaProducer) PublishEventCreated(ctx context.Context, message *EventCreatedMessage) error {
	messageBytes, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event message: %w", err)
	}

	kafkaMessage := &sarama.ProducerMessage{
		Topic:     kp.config.EventTopic,
		Key:       sarama.StringEncoder(message.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kp.createHeaders(message),
		Timestamp: message.CreatedAt,
	}

	partition, offset, err := kp.producer.SendMessage(kafkaMessage)
	if err != nil {
		return fmt.Errorf("failed to send event message to Kafka: %w", err)
	}

	kp.log.Info("event message published",
		"topic", kp.config.EventTopic,
		"partition", partition,
		"offset", offset,
		"event_id", message.EventID.String())

	return nil
}

func (kp *KafkaProducer) createHeaders(message *EventCreatedMessage) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(message.ID.String())},
		{Key: []byte("event_id"), Value: []byte(message.EventID.String())},
		{Key: []byte("staff_id"), Value: []byte(message.StaffID.String())},
		{Key: []byte("event_type"), Value: []byte(message.EventType)},
		{Key: []byte("producer"), Value: []byte("eventcraft-backend")},
		{Key: []byte("created_at"), Value: []byte(message.CreatedAt.Format(time.RFC3339))},
	}

	if message.BookingID != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("booking_id"),
			Value: []byte(message.BookingID.String()),
		})
	}

	return headers
}

// HealthCheck validates the producer and its configuration without sending
func (kp *KafkaProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if kp.config.EventTopic == "" {
		return fmt.Errorf("health check failed - event topic not configured")
	}
	if len(kp.config.Brokers) == 0 {
		return fmt.Errorf("health check failed - no brokers configured")
	}
	return nil
}

// Close closes the Kafka producer
func (kp *KafkaProducer) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		kp.log.Info("Kafka producer closed")
	}
	return nil
}

// noopProducer satisfies Producer when Kafka is disabled. Publishes are
// logged at debug level and dropped.
type noopProducer struct {
	log *logger.Logger
}

// NewNoopProducer returns a producer that drops all messages
func NewNoopProducer() Producer {
	return &noopProducer{log: logger.GetDefault()}
}

func (np *noopProducer) PublishEventCreated(ctx context.Context, message *EventCreatedMessage) error {
	np.log.Debug("Kafka disabled, dropping event message", "event_id", message.EventID.String())
	return nil
}

func (np *noopProducer) HealthCheck(ctx context.Context) error { return nil }

func (np *noopProducer) Close() error { return nil }
