package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// retryableError marks a handler failure that should be redelivered rather
// than skipped.
type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// Retryable wraps err so the consumer retries the same message instead of
// committing past it.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err: err}
}

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var r retryableError
	return errors.As(err, &r)
}

// messageReader is the subset of *kafkago.Reader the consumer loop needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer wraps kafka-go reader for consuming messages.
type Consumer struct {
	reader     messageReader
	topic      string
	group      string
	handler    Handler
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewConsumer creates a new Consumer for the given topic with the provided handler.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	readerCfg := kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	}

	dialer, err := cfg.dialer()
	if err != nil {
		return nil, err
	}
	if dialer != nil {
		readerCfg.Dialer = dialer
	}

	return &Consumer{
		reader:     kafkago.NewReader(readerCfg),
		topic:      topic,
		group:      cfg.ConsumerGroup,
		handler:    handler,
		logger:     logger,
		retryDelay: time.Second,
	}, nil
}

// Start begins consuming messages. Blocks until the context is canceled.
// Messages are committed after the handler returns nil or a non-retryable
// error; retryable errors hold the partition and retry the same message.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting", "topic", c.topic, "group", c.group)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if !c.handle(ctx, m) {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// handle runs the handler until it succeeds or fails permanently. It returns
// false only when ctx ends while a retry is pending.
func (c *Consumer) handle(ctx context.Context, m kafkago.Message) bool {
	msg := Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}

	for {
		err := c.handler(ctx, msg)
		if err == nil {
			return true
		}
		if !IsRetryable(err) {
			c.logger.Error("handler error, skipping message",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
			return true
		}

		c.logger.Warn("handler error, retrying message",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.retryDelay):
		}
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}
