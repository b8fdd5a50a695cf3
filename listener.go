package treads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RabbitSettings struct {
	Host        string `envconfig:"RABBITMQ_HOST" required:"true" default:"localhost"`
	Port        string `envconfig:"RABBITMQ_PORT" required:"true" default:"5672"`
	User        string `envconfig:"RABBITMQ_USER" required:"true" default:"admin"`
	Pass        string `envconfig:"RABBITMQ_PASS" required:"true" default:"admin"`
	Queue       string `envconfig:"TREADS_QUEUE" default:"treads-colors"`
	ResultQueue string `envconfig:"TREADS_RESULT_QUEUE" default:"treads-colors-results"`
}

func LoadRabbitSettings() (RabbitSettings, error) {
	var s RabbitSettings
	err := envconfig.Process("", &s)
	return s, err
}

func (s RabbitSettings) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", s.User, s.Pass, s.Host, s.Port)
}

// Job asks a worker to analyse the image at URL.
type Job struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	RemoveBackground bool   `json:"remove_background"`
}

type JobResult struct {
	JobID    string    `json:"job_id"`
	Manifest *Manifest `json:"manifest,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type JobHandler func(ctx context.Context, job Job) (*Manifest, error)

var ErrMalformedJob = errors.New("malformed job")

// handleDelivery runs handler for one message body and encodes its result.
// Handler failures are reported inside the result; only undecodable bodies
// return an error.
func handleDelivery(ctx context.Context, body []byte, handler JobHandler) ([]byte, error) {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	if job.URL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrMalformedJob)
	}

	result := JobResult{JobID: job.ID}
	manifest, err := handler(ctx, job)
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Manifest = manifest
	}
	return json.Marshal(result)
}

type Listener struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	settings RabbitSettings
	logger   *zap.Logger
}

func Dial(s RabbitSettings, logger *zap.Logger) (*Listener, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(s.URL())
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Listener{conn: conn, ch: ch, settings: s, logger: logger}, nil
}

func (l *Listener) Close() error {
	if err := l.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		l.conn.Close()
		return err
	}
	return l.conn.Close()
}

func (l *Listener) declare() error {
	for _, name := range []string{l.settings.Queue, l.settings.ResultQueue} {
		if _, err := l.ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		); err != nil {
			return err
		}
	}
	return l.ch.Qos(1, 0, false)
}

// Listen consumes jobs until ctx is cancelled or the channel closes.
func (l *Listener) Listen(ctx context.Context, handler JobHandler) error {
	if err := l.declare(); err != nil {
		return err
	}

	msgs, err := l.ch.ConsumeWithContext(ctx,
		l.settings.Queue, // queue
		"",               // consumer
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return err
	}

	l.logger.Info("[*] Waiting for messages", zap.String("queue", l.settings.Queue))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return amqp.ErrClosed
			}
			if err := l.deliver(ctx, d, handler); err != nil {
				return err
			}
		}
	}
}

func (l *Listener) deliver(ctx context.Context, d amqp.Delivery, handler JobHandler) error {
	st := time.Now()
	result, err := handleDelivery(ctx, d.Body, handler)
	if err != nil {
		l.logger.Warn("[!] Rejecting message", zap.Error(err))
		return d.Reject(false)
	}

	if err = l.ch.PublishWithContext(ctx,
		"",                     // exchange
		l.settings.ResultQueue, // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Timestamp:     time.Now(),
			Body:          result,
		}); err != nil {
		if nackErr := d.Nack(false, true); nackErr != nil {
			l.logger.Warn("[!] Nack failed", zap.Error(nackErr))
		}
		return err
	}

	l.logger.Info("[<] Job done", zap.Duration("at", time.Since(st)))
	return d.Ack(false)
}
