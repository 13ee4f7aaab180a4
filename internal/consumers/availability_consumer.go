package consumers

import (
	"context"
	"encoding/json"
	"time"

	"listing-search/internal/contracts"
	"listing-search/internal/models"
	"listing-search/internal/utils"
	"listing-search/pkg/logger"
	"listing-search/pkg/messaging"
	"listing-search/pkg/metrics"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	eventTypeHeader    = "x-event-type"
	eventVersionHeader = "x-event-version"
	traceIDHeader      = "x-trace-id"
)

type Invalidator interface {
	Invalidate(ctx context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error)
}

// AvailabilityConsumer turns AvailabilityChanged events into range invalidations of the
// snapshot cache.
type AvailabilityConsumer struct {
	invalidator Invalidator
	timeout     time.Duration
}

func NewAvailabilityConsumer(invalidator Invalidator) *AvailabilityConsumer {
	return &AvailabilityConsumer{invalidator: invalidator, timeout: 10 * time.Second}
}

// HandleDelivery is a messaging.Handler. Malformed events are discarded; transient failures
// are requeued once and discarded on the redelivery.
func (a *AvailabilityConsumer) HandleDelivery(ctx context.Context, d amqp.Delivery) messaging.Decision {
	traceID, _ := d.Headers[traceIDHeader].(string)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	eventType, eventVersion := eventMeta(d)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		logger.GlobalLogger.Warnf("trace_id=%s discarding invalid %s/%s event: %v", traceID, eventType, eventVersion, err)
		return a.done("rejected", messaging.Discard)
	}

	var event contracts.AvailabilityChanged
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.GlobalLogger.Warnf("trace_id=%s discarding undecodable event: %v", traceID, err)
		return a.done("rejected", messaging.Discard)
	}
	dr, err := models.ParseDateRange(event.Checkin, event.Checkout)
	if err != nil {
		logger.GlobalLogger.Warnf("trace_id=%s discarding event for market %d: %v", traceID, event.MarketID, err)
		return a.done("rejected", messaging.Discard)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	report, err := a.invalidator.Invalidate(ctx, event.MarketID, dr)
	if err != nil {
		if utils.IsRetryableError(err) && !d.Redelivered {
			logger.GlobalLogger.Warnf("trace_id=%s invalidation for market %d failed, requeueing: %v", traceID, event.MarketID, err)
			return a.done("requeued", messaging.Requeue)
		}
		logger.GlobalLogger.Errorf("trace_id=%s invalidation for market %d failed, dropping event: %v", traceID, event.MarketID, err)
		return a.done("failed", messaging.Discard)
	}

	logger.GlobalLogger.Debugf("trace_id=%s market %d %s: %d keys invalidated", traceID, event.MarketID, dr, len(report.Deleted))
	return a.done("invalidated", messaging.Ack)
}

func (a *AvailabilityConsumer) done(outcome string, decision messaging.Decision) messaging.Decision {
	metrics.EventsConsumedTotal.WithLabelValues(outcome).Inc()
	return decision
}

// eventMeta reads the event type from the AMQP type property or header, defaulting to the
// only event this service consumes.
func eventMeta(d amqp.Delivery) (string, string) {
	eventType := d.Type
	if h, ok := d.Headers[eventTypeHeader].(string); ok && h != "" {
		eventType = h
	}
	if eventType == "" {
		eventType = contracts.AvailabilityChangedEvent
	}
	version, _ := d.Headers[eventVersionHeader].(string)
	if version == "" {
		version = contracts.AvailabilityChangedVersion
	}
	return eventType, version
}
