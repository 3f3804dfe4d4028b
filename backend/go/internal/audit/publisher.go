package audit

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/models"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// Publisher emits verification audit records to Kafka. Delivery is best
// effort: a broker outage must never fail a verification request.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

// NewPublisher creates a publisher for the configured brokers and topic.
func NewPublisher(cfg config.KafkaConfig, logger *logger.Logger) *Publisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish sends one audit record, keyed by session so a consumer sees each
// session's verifications in order.
func (p *Publisher) Publish(ctx context.Context, audit models.VerificationAudit) error {
	msgBytes, err := json.Marshal(audit)
	if err != nil {
		p.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("Failed to marshal audit record for Kafka")
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(audit.SessionID),
		Value: msgBytes,
	})
	if err != nil {
		p.logger.WithError(models.ErrorInfo{Message: err.Error()}).WithPayload(map[string]interface{}{"topic": p.writer.Topic}).Error("Failed to write audit record to Kafka")
		return err
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
