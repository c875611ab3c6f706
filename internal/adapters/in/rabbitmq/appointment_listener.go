package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/in"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
)

// AppointmentListener consumes appointment change events from the salon
// backend and drops the affected employee's cached slots. This is what keeps
// the slot cache honest between a booking being created elsewhere and the
// next generation request.
type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ScheduleUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

// appointmentEvent is the payload published on every appointment mutation.
type appointmentEvent struct {
	AppointmentID string `json:"appointmentId"`
	EmployeeID    string `json:"employeeId"`
	Action        string `json:"action"`
}

func NewAppointmentListener(useCase in.ScheduleUseCase, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	consumerTag := "schedule-service-" + uuid.NewString()
	msgs, err := l.channel.Consume(
		queue.Name,
		consumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	l.logger.Info("rabbitmq.consume.started", out.LogFields{
		"queue":       queue.Name,
		"consumerTag": consumerTag,
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Error("rabbitmq.message.failed", out.LogFields{
						"error": err.Error(),
					})
					msg.Nack(false, true) // requeue
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var event appointmentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	l.logger.Debug("rabbitmq.message.received", out.LogFields{
		"appointmentId": event.AppointmentID,
		"employeeId":    event.EmployeeID,
		"action":        event.Action,
	})

	// Without an employee attribution the event could touch any cached
	// sequence, so everything goes.
	if event.EmployeeID == "" {
		l.useCase.InvalidateAllSlots(ctx)
		return nil
	}

	l.useCase.InvalidateEmployeeSlots(ctx, event.EmployeeID)
	return nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}
	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
