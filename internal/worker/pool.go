package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rohit/cms-editorial/internal/config"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/metrics"
	"github.com/rohit/cms-editorial/internal/repository"
	"github.com/rs/zerolog"
)

const writeTimeout = 5 * time.Second

// Pool dispatches audit events to the audit store and the optional JSON
// log file on background workers. It implements audit.Recorder.
type Pool struct {
	queue   chan models.AuditEvent
	wg      sync.WaitGroup
	quit    chan struct{}
	logger  zerolog.Logger
	repo    repository.AuditRepository
	fileLog *zerolog.Logger
	metrics *metrics.Collector
	cfg     config.AuditConfig
	mu      sync.Mutex
	running bool
}

// NewPool creates a new audit pool. fileLog and metricsCollector may be nil.
func NewPool(
	repo repository.AuditRepository,
	fileLog *zerolog.Logger,
	metricsCollector *metrics.Collector,
	logger zerolog.Logger,
	cfg config.AuditConfig,
) *Pool {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Pool{
		queue:   make(chan models.AuditEvent, cfg.QueueSize),
		quit:    make(chan struct{}),
		logger:  logger,
		repo:    repo,
		fileLog: fileLog,
		metrics: metricsCollector,
		cfg:     cfg,
	}
}

// Start starts the workers
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info().
		Int("audit_workers", p.cfg.Workers).
		Int("queue_size", p.cfg.QueueSize).
		Msg("Audit pool started")
}

// Stop stops the workers after the queued events are written
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.quit)
	p.wg.Wait()
	p.logger.Info().Msg("Audit pool stopped")
}

// Record queues an event without blocking. A full queue drops the event.
func (p *Pool) Record(event models.AuditEvent) {
	select {
	case p.queue <- event:
		if p.metrics != nil {
			p.metrics.RecordAuditAccepted()
			p.metrics.SetAuditQueueDepth(len(p.queue))
		}
	default:
		if p.metrics != nil {
			p.metrics.RecordAuditDropped()
		}
		p.logger.Warn().
			Str("action", event.Action).
			Str("module", event.Module).
			Msg("Audit queue full, event dropped")
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	logger := p.logger.With().Int("worker_id", id).Str("type", "audit").Logger()
	logger.Debug().Msg("Audit worker started")

	for {
		select {
		case <-p.quit:
			p.drain(logger)
			logger.Debug().Msg("Audit worker stopping")
			return
		case <-ctx.Done():
			p.drain(logger)
			logger.Debug().Msg("Audit worker stopping (context cancelled)")
			return
		case event := <-p.queue:
			p.write(event, logger)
		}
	}
}

func (p *Pool) drain(logger zerolog.Logger) {
	for {
		select {
		case event := <-p.queue:
			p.write(event, logger)
		default:
			return
		}
	}
}

// write delivers one event to every sink. Failures are logged and counted only.
func (p *Pool) write(event models.AuditEvent, logger zerolog.Logger) {
	if p.metrics != nil {
		p.metrics.SetAuditQueueDepth(len(p.queue))
	}

	if p.fileLog != nil {
		entry := p.fileLog.Info()
		if event.Level == models.AuditLevelError {
			entry = p.fileLog.Error()
		} else if event.Level == models.AuditLevelWarn {
			entry = p.fileLog.Warn()
		}
		if event.UserID != nil {
			entry = entry.Str("user_id", event.UserID.String())
		}
		entry.
			Str("event_id", event.ID.String()).
			Str("action", event.Action).
			Str("module", event.Module).
			Str("endpoint", event.Endpoint).
			Str("method", event.Method).
			Int("status_code", event.StatusCode).
			Str("ip_address", event.IPAddress).
			Str("user_agent", event.UserAgent).
			RawJSON("metadata", metadataOrEmpty(event.Metadata)).
			Time("event_time", event.Timestamp).
			Msg(event.Message)
	}

	if p.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.repo.Create(ctx, &event); err != nil {
		if p.metrics != nil {
			p.metrics.RecordAuditFailure("database")
		}
		logger.Warn().Err(err).
			Str("event_id", event.ID.String()).
			Str("action", event.Action).
			Msg("Failed to persist audit event")
	}
}

func metadataOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

// GetQueueStats returns current queue statistics
func (p *Pool) GetQueueStats() map[string]int {
	return map[string]int{
		"audit_queue_size": len(p.queue),
		"audit_queue_cap":  cap(p.queue),
	}
}
