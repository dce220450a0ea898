package injector

import (
	// Go Internal Packages
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	// Local Packages
	config "tx-injector/config"
	errors "tx-injector/errors"
	models "tx-injector/models"
	serializers "tx-injector/serializers"

	// External Packages
	"go.uber.org/zap"
)

const journalTimeout = 2 * time.Second

type State int32

const (
	Created State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Generator interface {
	Generate() models.Transaction
}

type Publisher interface {
	Publish(ctx context.Context, record models.Record, onDelivery func(models.Delivery, error))
	Close(ctx context.Context) error
}

// Journal keeps delivery reports outside the process.
type Journal interface {
	Record(ctx context.Context, d models.Delivery) error
}

// Recorder receives one call per outcome, from the tick goroutine or a client goroutine.
type Recorder interface {
	Generated()
	TickFailed()
	Delivered()
	DeliveryFailed()
}

type nopRecorder struct{}

func (nopRecorder) Generated()      {}
func (nopRecorder) TickFailed()     {}
func (nopRecorder) Delivered()      {}
func (nopRecorder) DeliveryFailed() {}

type Config struct {
	Topic         string
	Interval      time.Duration
	SendCount     int64 // <= 0 means unlimited
	ShutdownGrace time.Duration
}

type Opt func(*Injector)

func WithJournal(j Journal) Opt {
	return func(i *Injector) { i.journal = j }
}

func WithRecorder(r Recorder) Opt {
	return func(i *Injector) { i.recorder = r }
}

// Injector publishes one generated transaction per interval until stopped or until
// SendCount deliveries have completed.
type Injector struct {
	conf       Config
	generator  Generator
	serializer serializers.Serializer
	publisher  Publisher
	journal    Journal
	recorder   Recorder
	logger     *zap.Logger

	// sent counts completed deliveries, successful or not.
	sent atomic.Int64

	mu       sync.Mutex
	state    State
	stopCh   chan struct{}
	loopDone chan struct{}
	done     chan struct{}

	// workCtx is handed to tick work and cancelled to force it to give up.
	workCtx    context.Context
	cancelWork context.CancelFunc
}

func New(conf Config, gen Generator, ser serializers.Serializer, pub Publisher, logger *zap.Logger, opts ...Opt) (*Injector, error) {
	if conf.Interval <= 0 {
		return nil, errors.E(errors.Invalid, "send interval must be positive", nil)
	}
	if conf.Topic == "" {
		return nil, errors.EmptyParamErr("topic")
	}

	workCtx, cancel := context.WithCancel(context.Background())
	i := &Injector{
		conf:       conf,
		generator:  gen,
		serializer: ser,
		publisher:  pub,
		recorder:   nopRecorder{},
		logger:     logger,
		stopCh:     make(chan struct{}),
		loopDone:   make(chan struct{}),
		done:       make(chan struct{}),
		workCtx:    workCtx,
		cancelWork: cancel,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *Injector) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Sent returns the number of completed deliveries.
func (i *Injector) Sent() int64 { return i.sent.Load() }

// Done is closed once the injector reaches Stopped.
func (i *Injector) Done() <-chan struct{} { return i.done }

// Start arms the ticker. The first tick fires immediately.
func (i *Injector) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != Created {
		return errors.E(errors.Invalid, fmt.Sprintf("cannot start injector in state %s", i.state), nil)
	}
	i.state = Running
	go i.loop()

	i.logger.Info("transaction injector started",
		zap.String("topic", i.conf.Topic),
		zap.String("format", i.serializer.Format()),
		zap.Duration("interval", i.conf.Interval),
		zap.Int64("send_count", i.conf.SendCount),
	)
	return nil
}

// Stop halts the ticker, waits up to the shutdown grace period for the running tick, then
// flushes and closes the publisher. If ctx ends while waiting, the wait is abandoned, the
// shutdown is forced and ctx.Err() is returned. Calling Stop again is a no-op.
func (i *Injector) Stop(ctx context.Context) error {
	if !i.beginStop() {
		return nil
	}
	return i.shutdown(ctx)
}

func (i *Injector) beginStop() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	switch i.state {
	case Created:
		close(i.loopDone)
	case Running:
		close(i.stopCh)
	default:
		return false
	}
	i.state = Stopping
	return true
}

func (i *Injector) shutdown(ctx context.Context) error {
	i.logger.Info("stopping transaction injector")

	var err error
	grace := time.NewTimer(i.conf.ShutdownGrace)
	defer grace.Stop()

	select {
	case <-i.loopDone:
	case <-grace.C:
		i.logger.Warn("tick still running after grace period, forcing shutdown", zap.Duration("grace", i.conf.ShutdownGrace))
	case <-ctx.Done():
		err = ctx.Err()
		i.logger.Warn("interrupted while waiting for tick, forcing shutdown", zap.Error(err))
	}
	i.cancelWork()

	closeCtx, cancel := context.WithTimeout(ctx, i.conf.ShutdownGrace)
	defer cancel()
	if cerr := i.publisher.Close(closeCtx); cerr != nil {
		i.logger.Warn("publisher did not close cleanly", zap.Error(cerr))
	}

	i.mu.Lock()
	i.state = Stopped
	close(i.done)
	i.mu.Unlock()

	i.logger.Info("transaction injector stopped", zap.Int64("sent", i.sent.Load()))
	return err
}

func (i *Injector) loop() {
	ticker := time.NewTicker(i.conf.Interval)
	defer ticker.Stop()

	limited := i.run(ticker.C)
	close(i.loopDone)

	if limited && i.beginSelfStop() {
		_ = i.shutdown(context.Background())
	}
}

// run returns true when it exits because the send count limit was reached.
func (i *Injector) run(ticks <-chan time.Time) bool {
	for {
		select {
		case <-i.stopCh:
			return false
		default:
		}

		if i.limitReached() {
			i.logger.Info("reached send count limit, stopping", zap.Int64("send_count", i.conf.SendCount))
			return true
		}
		i.tick()

		select {
		case <-i.stopCh:
			return false
		case <-ticks:
		}
	}
}

func (i *Injector) beginSelfStop() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != Running {
		return false
	}
	i.state = Stopping
	close(i.stopCh)
	return true
}

func (i *Injector) limitReached() bool {
	return i.conf.SendCount > 0 && i.sent.Load() >= i.conf.SendCount
}

// tick generates, serializes and submits one transaction. Nothing that goes wrong in
// here may escape and end the loop.
func (i *Injector) tick() {
	defer func() {
		if r := recover(); r != nil {
			i.recorder.TickFailed()
			i.logger.Error("error creating transaction, tick skipped", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	tx := i.generator.Generate()
	i.recorder.Generated()

	payload, err := i.serializer.Serialize(i.workCtx, i.conf.Topic, tx)
	if err != nil {
		i.recorder.TickFailed()
		i.logger.Error("error serializing transaction, tick skipped", zap.String("key", tx.TxID), zap.Error(err))
		return
	}

	record := models.Record{Topic: i.conf.Topic, Key: []byte(tx.TxID), Value: payload}
	i.publisher.Publish(i.workCtx, record, func(d models.Delivery, err error) {
		i.onDelivery(d, err, payload)
	})
}

// onDelivery runs on a client goroutine.
func (i *Injector) onDelivery(d models.Delivery, err error, payload []byte) {
	d.Count = i.sent.Add(1)

	if err != nil {
		i.recorder.DeliveryFailed()
		err = errors.PublishErr(d.Topic, d.Key, err)
		d.Error = err.Error()
		i.logger.Error("error sending message",
			zap.Int64("count", d.Count),
			zap.String("topic", d.Topic),
			zap.String("key", d.Key),
			zap.Error(err),
		)
	} else {
		i.recorder.Delivered()
		i.logger.Info("message sent successfully",
			zap.Int64("count", d.Count),
			zap.String("topic", d.Topic),
			zap.Int32("partition", d.Partition),
			zap.Int64("offset", d.Offset),
			zap.String("key", d.Key),
		)
		if i.serializer.Format() == config.FormatJSON {
			i.logger.Debug("json payload", zap.String("key", d.Key), zap.ByteString("payload", payload))
		}
	}

	if i.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if jerr := i.journal.Record(ctx, d); jerr != nil {
		i.logger.Warn("cannot journal delivery", zap.String("key", d.Key), zap.Error(jerr))
	}
}
