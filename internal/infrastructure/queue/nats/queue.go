package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtb-io/mercury-ci/internal/infrastructure/resilience"
	"github.com/nats-io/nats.go"
)

const workerGroup = "workers"

// Queue carries file analysis events between the api and worker binaries
// over a single subject.
type Queue struct {
	nc       *nats.Conn
	subject  string
	executor *resilience.Executor
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 2 * time.Second
	}
	if o.ReconnectWait <= 0 {
		o.ReconnectWait = 2 * time.Second
	}
	if o.MaxReconnects <= 0 {
		o.MaxReconnects = 60
	}
	return o
}

func New(url, subject string) (*Queue, error) {
	return NewWithOptions(url, subject, Options{})
}

func NewWithOptions(url, subject string, options Options) (*Queue, error) {
	opts := options.withDefaults()
	retryOnFailedConnect := true
	if opts.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *opts.RetryOnFailedConnect
	}

	nc, err := nats.Connect(
		url,
		nats.Name("mercury-ci"),
		nats.Timeout(opts.ConnectTimeout),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{
		nc:       nc,
		subject:  subject,
		executor: opts.ResilienceExecutor,
	}, nil
}

func (q *Queue) Close() {
	if q.nc != nil {
		q.nc.Close()
	}
}

// PublishFileAnalysis hands a file id to the worker pool. Transient broker
// failures surface as a temporary error kind so callers can answer 503.
func (q *Queue) PublishFileAnalysis(ctx context.Context, fileID string) error {
	publish := func(_ context.Context) error {
		if err := q.nc.Publish(q.subject, []byte(fileID)); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if q.executor == nil {
		return wrapTemporaryIfNeeded(publish(ctx))
	}
	return wrapTemporaryIfNeeded(q.executor.Run(ctx, "nats.publish", publish, classifyNATSError))
}

// SubscribeFileAnalysis consumes analysis events in the shared worker group
// until ctx ends, then drains the subscription.
func (q *Queue) SubscribeFileAnalysis(ctx context.Context, handler func(context.Context, string) error) error {
	sub, err := q.nc.QueueSubscribe(q.subject, workerGroup, func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		fileID := string(msg.Data)
		handlerCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := handler(handlerCtx, fileID); err != nil {
			slog.Error("worker_handler_failed", "file_id", fileID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.nc.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.nc.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}
