package consumers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	apperrors "listing-search/internal/errors"
	"listing-search/internal/models"
	"listing-search/pkg/messaging"
	"listing-search/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	amqp "github.com/rabbitmq/amqp091-go"
)

type stubInvalidator struct {
	err    error
	calls  int
	market int64
	dr     models.DateRange
}

func (s *stubInvalidator) Invalidate(_ context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error) {
	s.calls++
	s.market, s.dr = marketID, dr
	return models.InvalidationReport{MarketID: marketID}, s.err
}

func delivery(body string) amqp.Delivery {
	return amqp.Delivery{Body: []byte(body), Headers: amqp.Table{}}
}

const validEvent = `{"market_id":5,"checkin":"2024-06-01","checkout":"2024-06-04"}`

func TestHandleDeliveryInvalidates(t *testing.T) {
	inv := &stubInvalidator{}
	before := testutil.ToFloat64(metrics.EventsConsumedTotal.WithLabelValues("invalidated"))

	got := NewAvailabilityConsumer(inv).HandleDelivery(context.Background(), delivery(validEvent))
	if got != messaging.Ack {
		t.Fatalf("expected ack, got %s", got)
	}
	if inv.calls != 1 || inv.market != 5 || inv.dr.Nights() != 3 {
		t.Fatalf("unexpected invalidation %+v", inv)
	}
	if after := testutil.ToFloat64(metrics.EventsConsumedTotal.WithLabelValues("invalidated")); after != before+1 {
		t.Fatalf("expected invalidated counter to grow by 1, got %v -> %v", before, after)
	}
}

func TestHandleDeliveryDiscardsInvalidEvents(t *testing.T) {
	tests := []struct {
		name string
		d    amqp.Delivery
	}{
		{"NotJSON", delivery("nope")},
		{"MissingCheckout", delivery(`{"market_id":5,"checkin":"2024-06-01"}`)},
		{"InvertedRange", delivery(`{"market_id":5,"checkin":"2024-06-04","checkout":"2024-06-01"}`)},
		{"UnknownType", amqp.Delivery{Type: "ListingDeletedEvent", Body: []byte(validEvent)}},
		{"UnknownVersion", amqp.Delivery{Headers: amqp.Table{eventVersionHeader: "9.0.0"}, Body: []byte(validEvent)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &stubInvalidator{}
			if got := NewAvailabilityConsumer(inv).HandleDelivery(context.Background(), tt.d); got != messaging.Discard {
				t.Fatalf("expected discard, got %s", got)
			}
			if inv.calls != 0 {
				t.Fatal("invalid event must not invalidate")
			}
		})
	}
}

func TestHandleDeliveryRetriesTransientFailureOnce(t *testing.T) {
	unavailable := apperrors.NewAppError("redis down", apperrors.MsgServiceUnavailable,
		apperrors.ErrCodeServiceUnavailable, http.StatusServiceUnavailable, stderrors.New("redis down"))
	c := NewAvailabilityConsumer(&stubInvalidator{err: unavailable})

	if got := c.HandleDelivery(context.Background(), delivery(validEvent)); got != messaging.Requeue {
		t.Fatalf("expected requeue on first failure, got %s", got)
	}

	redelivered := delivery(validEvent)
	redelivered.Redelivered = true
	if got := c.HandleDelivery(context.Background(), redelivered); got != messaging.Discard {
		t.Fatalf("expected discard on redelivery, got %s", got)
	}
}

func TestHandleDeliveryDropsPermanentFailure(t *testing.T) {
	c := NewAvailabilityConsumer(&stubInvalidator{err: stderrors.New("boom")})
	if got := c.HandleDelivery(context.Background(), delivery(validEvent)); got != messaging.Discard {
		t.Fatalf("expected discard, got %s", got)
	}
}
