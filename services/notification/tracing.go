package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingGateway opens a span for every send.
type TracingGateway struct {
	gateway PushGateway
	tracer  trace.Tracer
}

// NewTracingGateway wraps g with spans from tp; a nil tp uses the global provider.
func NewTracingGateway(g PushGateway, tp trace.TracerProvider) *TracingGateway {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingGateway{
		gateway: g,
		tracer:  tp.Tracer("nhap/notification"),
	}
}

func (t *TracingGateway) Send(ctx context.Context, message *messaging.Message) (string, error) {
	ctx, span := t.tracer.Start(ctx, "PushGateway.Send",
		trace.WithAttributes(
			attribute.String("notification.type", message.Data["type"]),
			attribute.String("notification.bookingId", message.Data["bookingId"]),
		))
	defer span.End()

	id, err := t.gateway.Send(ctx, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("notification.messageId", id))
	}
	return id, err
}
