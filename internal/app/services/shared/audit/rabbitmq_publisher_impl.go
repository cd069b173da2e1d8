package audit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type rabbitMQPublisher struct {
	mu      sync.Mutex
	Channel *amqp091.Channel
	Queue   string
}

// NewRabbitMQPublisher declares a durable queue and puts the channel in
// confirm mode.
func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, queue string) (contracts.AuditPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		return nil, err
	}
	if err := channel.Confirm(false); err != nil {
		channel.Close()
		return nil, err
	}
	return &rabbitMQPublisher{Channel: channel, Queue: queue}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event *fhir_dto.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationFHIRJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Type:         constvars.ResourceAuditEvent,
		Headers: amqp091.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	p.mu.Lock()
	confirmation, err := p.Channel.PublishWithDeferredConfirmWithContext(ctx, "", p.Queue, false, false, message)
	p.mu.Unlock()
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("broker nacked message"), p.Queue)
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() contracts.AuditPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, event *fhir_dto.AuditEvent) error { return nil }
