package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"EWaste-App/internal/domain/model"
)

// MessageWriter パブリッシャーが使うkafka.Writerのメソッド
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSuggestionPublisher はセンター提案をKafkaトピックへ送信する
type KafkaSuggestionPublisher struct {
	writer MessageWriter
	topic  string
}

// NewKafkaSuggestionPublisher 新しいパブリッシャーを作成
func NewKafkaSuggestionPublisher(broker, topic string) *KafkaSuggestionPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		WriteTimeout: 2 * time.Second,
	}
	log.Printf("📨 Kafka publisher configured (broker: %s, topic: %s)", broker, topic)
	return NewKafkaSuggestionPublisherWithWriter(writer, topic)
}

// NewKafkaSuggestionPublisherWithWriter 任意のWriterでパブリッシャーを作成
func NewKafkaSuggestionPublisherWithWriter(writer MessageWriter, topic string) *KafkaSuggestionPublisher {
	return &KafkaSuggestionPublisher{writer: writer, topic: topic}
}

// suggestionEvent Kafkaに送るメッセージ本文
type suggestionEvent struct {
	Type       string                `json:"type"`
	Suggestion model.SuggestedCenter `json:"suggestion"`
}

// PublishSuggestion 提案1件をイベントとして送信する
func (p *KafkaSuggestionPublisher) PublishSuggestion(ctx context.Context, suggestion model.SuggestedCenter) error {
	payload, err := json.Marshal(suggestionEvent{
		Type:       "center_suggested",
		Suggestion: suggestion,
	})
	if err != nil {
		return fmt.Errorf("提案イベントのJSONマーシャル失敗: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(suggestion.City),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("提案イベントの送信失敗 (topic: %s): %w", p.topic, err)
	}
	return nil
}

// Close Writerを閉じる
func (p *KafkaSuggestionPublisher) Close() error {
	return p.writer.Close()
}
