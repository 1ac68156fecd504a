package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/recallnet/js-recall-sub004/internal/config"
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/metrics"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes classified trades and transfers to their topics, keyed by
// wallet so one wallet's records stay ordered within a partition.
type Publisher struct {
	trades         messageWriter
	transfers      messageWriter
	tradesTopic    string
	transfersTopic string
	logger         *slog.Logger
}

func NewPublisher(cfg config.KafkaConfig, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		trades:         newWriter(cfg.Brokers, cfg.TradesTopic),
		transfers:      newWriter(cfg.Brokers, cfg.TransfersTopic),
		tradesTopic:    cfg.TradesTopic,
		transfersTopic: cfg.TransfersTopic,
		logger:         logger.With("component", "kafka_publisher"),
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func (p *Publisher) PublishTrades(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(trades))
	for _, t := range trades {
		msg, err := buildMessage(t.Wallet, "trade", t.Chain, t)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.write(ctx, p.trades, p.tradesTopic, msgs)
}

func (p *Publisher) PublishTransfers(ctx context.Context, wallet string, transfers []model.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(transfers))
	for _, t := range transfers {
		msg, err := buildMessage(wallet, string(t.Type), t.Chain, t)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.write(ctx, p.transfers, p.transfersTopic, msgs)
}

func (p *Publisher) write(ctx context.Context, w messageWriter, topic string, msgs []kafka.Message) error {
	if err := w.WriteMessages(ctx, msgs...); err != nil {
		metrics.PublishErrors.WithLabelValues(topic).Inc()
		return fmt.Errorf("kafka write %s: %w", topic, err)
	}
	p.logger.Debug("published", "topic", topic, "messages", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	tradesErr := p.trades.Close()
	transfersErr := p.transfers.Close()
	if tradesErr != nil {
		return tradesErr
	}
	return transfersErr
}

func buildMessage(wallet, kind string, c model.Chain, payload any) (kafka.Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s: %w", kind, err)
	}
	return kafka.Message{
		Key:   []byte(model.NormalizeAddress(wallet)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(kind)},
			{Key: "chain", Value: []byte(c.String())},
		},
	}, nil
}
