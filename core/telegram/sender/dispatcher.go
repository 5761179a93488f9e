package sender

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nedz/interviewbot/core/logger"
	"github.com/nedz/interviewbot/core/metrics"
)

const component = "tg.sender"

var (
	// ErrQueueClosed is returned when enqueue is attempted after dispatcher stop.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull indicates the queue is saturated and the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent retrying a single job, flood waits included.
	MaxDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	o.MaxRetries = max(o.MaxRetries, 0)
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 2 * time.Second
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 12 * time.Second
	}
	return o
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
}

// Dispatcher executes outbound Telegram calls on a worker pool. Each worker
// owns a queue and jobs are sharded by the chat id carried in the job context,
// so sends to one chat run in enqueue order. Transient network failures are
// retried with linear backoff; flood-control errors wait for the delay
// Telegram asks for.
type Dispatcher struct {
	opts   Options
	queues []chan job
	wg     sync.WaitGroup
	errs   atomic.Uint64
	rr     atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the workers. Zero options select defaults. QueueSize is
// split evenly across workers.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	perWorker := max(opts.QueueSize/opts.Workers, 1)
	d := &Dispatcher{
		opts:   opts,
		queues: make([]chan job, opts.Workers),
	}
	d.wg.Add(opts.Workers)
	for i := range d.queues {
		d.queues[i] = make(chan job, perWorker)
		go d.worker(d.queues[i])
	}
	return d
}

// shard picks the queue for ctx: by chat id when known, round-robin otherwise.
func (d *Dispatcher) shard(ctx context.Context) int {
	n := uint64(len(d.queues))
	if chatID := logger.ChatIDFrom(ctx); chatID != 0 {
		return int(uint64(chatID) % n)
	}
	return int(d.rr.Add(1) % n)
}

// Enqueue schedules run without blocking. run must be safe to repeat when retries are enabled.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.queues[d.shard(ctx)] <- job{ctx: ctx, action: action, endpoint: endpoint, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of jobs that finally failed.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.errs.Load()
}

// Close stops accepting jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, q := range d.queues {
			close(q)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker(queue <-chan job) {
	defer d.wg.Done()
	for j := range queue {
		d.process(j)
	}
}

func (d *Dispatcher) process(j job) {
	ctx, cancel := context.WithTimeout(j.ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attrs := []slog.Attr{slog.String("action", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}

	attempts := d.opts.MaxRetries + 1
	var err error
	attempt := 1
	for ; attempt <= attempts; attempt++ {
		if err = j.run(); err == nil {
			break
		}
		delay, retry := retryDelay(err, attempt, d.opts.RetryBackoff)
		if !retry || attempt == attempts {
			break
		}
		logger.Debug(j.ctx, component, "send.retry",
			append(attrs,
				slog.String("status", "retry"),
				slog.Int("attempt", attempt),
				slog.Int64("delay_ms", delay.Milliseconds()),
				slog.String("error_kind", classifyError(err)),
			)...,
		)
		if waitErr := sleep(ctx, delay); waitErr != nil {
			err = waitErr
			break
		}
	}
	elapsed := logger.RoundMS(time.Since(start)).Milliseconds()

	if err == nil {
		logger.Debug(j.ctx, component, "send.done",
			append(attrs,
				slog.String("status", "ok"),
				slog.Int("attempt", attempt),
				slog.Int64("elapsed_ms", elapsed),
			)...,
		)
		metrics.RecordSend(j.action, "ok")
		return
	}

	d.errs.Add(1)
	kind := classifyError(err)
	logger.Error(j.ctx, component, "send.done",
		append(attrs,
			slog.String("status", "fail"),
			slog.Int("attempts", min(attempt, attempts)),
			slog.String("err", sanitizeErrorMessage(err)),
			slog.String("error_kind", kind),
			slog.Int64("elapsed_ms", elapsed),
		)...,
	)
	metrics.RecordSend(j.action, kind)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
