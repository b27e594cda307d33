package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/shopspring/decimal"
)

type capturePublisher struct {
	msgs []domain.Message
}

func (c *capturePublisher) Publish(_ context.Context, msgs ...domain.Message) error {
	c.msgs = append(c.msgs, msgs...)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func TestPublishPaymentEvent(t *testing.T) {
	pub := &capturePublisher{}
	event := domain.PaymentEvent{
		EventID:       "evt-1",
		Type:          domain.EventPaymentSettled,
		OrderID:       42,
		TransactionID: 7,
		ReceiptNumber: "NLJ7RT61SV",
		Amount:        decimal.RequireFromString("1000.00"),
		OccurredAt:    time.Date(2026, 1, 24, 12, 0, 0, 0, time.UTC),
	}

	if err := PublishPaymentEvent(context.Background(), pub, event); err != nil {
		t.Fatalf("PublishPaymentEvent: %v", err)
	}
	if len(pub.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(pub.msgs))
	}
	if string(pub.msgs[0].Key) != "42" {
		t.Errorf("key = %q, want 42", pub.msgs[0].Key)
	}

	var decoded map[string]any
	if err := json.Unmarshal(pub.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("value not json: %v", err)
	}
	if decoded["type"] != domain.EventPaymentSettled {
		t.Errorf("type = %v", decoded["type"])
	}
	if decoded["amount"] != "1000" {
		t.Errorf("amount = %v", decoded["amount"])
	}
	if _, ok := decoded["checkout_request_id"]; ok {
		t.Error("empty checkout id should be omitted")
	}
}

func TestNoopPublisher(t *testing.T) {
	var p domain.PublisherPort = NoopPublisher{}
	if err := p.Publish(context.Background(), domain.Message{Key: []byte("k")}); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
