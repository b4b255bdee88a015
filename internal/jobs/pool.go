package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lol-sync/internal/config"
	syncer "lol-sync/internal/sync"
	"lol-sync/internal/telemetry"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrQueueFull is returned when the bounded queue cannot take another job.
// Callers surface it as backpressure rather than blocking.
var ErrQueueFull = errors.New("job queue full")

// Pool is the in-process job host: a bounded channel feeding a fixed set of
// workers, each run wrapped by the retry Executor. A job completes, is
// retried per policy, or is abandoned after exhausting its budget.
type Pool struct {
	queue    chan Job
	workers  int
	executor *Executor

	matches *syncer.MatchSyncer
	players *syncer.PlayerSyncer
	targets *syncer.ScoutingTargetSyncer
	logger  zerolog.Logger

	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewPool(cfg *config.Config, executor *Executor, matches *syncer.MatchSyncer, players *syncer.PlayerSyncer, targets *syncer.ScoutingTargetSyncer, logger zerolog.Logger) *Pool {
	return &Pool{
		queue:    make(chan Job, cfg.QueueSize),
		workers:  cfg.SyncWorkers,
		executor: executor,
		matches:  matches,
		players:  players,
		targets:  targets,
		logger:   logger,
	}
}

// Enqueue hands a job to the pool without blocking.
func (p *Pool) Enqueue(job Job) error {
	select {
	case p.queue <- job:
		return nil
	default:
		return fmt.Errorf("%w: dropping %s", ErrQueueFull, job.Name())
	}
}

// Start launches the workers. They run until Stop.
func (p *Pool) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.group, ctx = errgroup.WithContext(ctx)

	for i := 0; i < p.workers; i++ {
		worker := i
		p.group.Go(func() error {
			p.logger.Debug().Int("worker", worker).Msg("sync worker started")
			p.run(ctx)
			return nil
		})
	}
	p.logger.Info().Int("workers", p.workers).Int("queue_size", cap(p.queue)).Msg("job pool started")
}

// Stop cancels the workers and waits for in-flight jobs, bounded by ctx.
func (p *Pool) Stop(ctx context.Context) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info().Msg("job pool stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job pool shutdown timed out: %w", ctx.Err())
	}
}

func (p *Pool) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.queue:
			p.process(ctx, job)
		}
	}
}

// process runs one job to completion. The orchestrators bound each attempt
// themselves, so the retry delays here are free to exceed a single
// attempt's budget.
func (p *Pool) process(ctx context.Context, job Job) {
	start := time.Now()
	err := p.executor.Run(ctx, job.Name(), func(ctx context.Context) error {
		return p.dispatch(ctx, job)
	})
	telemetry.SyncDuration.WithLabelValues(job.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		// abandoned; the entity keeps its error status for staleness checks
		p.logger.Error().Err(err).Str("job", job.Name()).Msg("sync job abandoned after retries")
	}
}

func (p *Pool) dispatch(ctx context.Context, job Job) error {
	switch j := job.(type) {
	case MatchSync:
		return p.matches.Sync(ctx, j.RiotMatchID, j.OrganizationID, j.Region)
	case PlayerSync:
		return p.players.Sync(ctx, j.PlayerID)
	case ScoutingTargetSync:
		return p.targets.Sync(ctx, j.TargetID)
	default:
		return fmt.Errorf("unknown job type %T", job)
	}
}
