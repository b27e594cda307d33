package publisher

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
)

// PublishPaymentEvent keys the message by order id so events of one order stay ordered.
func PublishPaymentEvent(ctx context.Context, pub domain.PublisherPort, event domain.PaymentEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, domain.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: v,
	})
}
