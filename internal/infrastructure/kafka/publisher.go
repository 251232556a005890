package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type TradePublisher struct {
	writer *kafka.Writer
}

func NewTradePublisher(brokers []string, topic string) *TradePublisher {
	return &TradePublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *TradePublisher) PublishTrade(event TradeEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.SellerWallet),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *TradePublisher) Close() error {
	return p.writer.Close()
}
