package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	apperrors "github.com/allisson/secretstore/internal/errors"
)

// asyncAuditLogger implements AuditLogger with a bounded queue drained by a
// worker pool. A single worker (the default) preserves global write order;
// more workers trade ordering across submitters for throughput.
type asyncAuditLogger struct {
	entryRepo EntryRepository
	queue     chan *auditDomain.Entry
	mu        sync.RWMutex
	accepting bool
	group     *errgroup.Group
	shutdown  sync.Once
	logger    *slog.Logger
}

// Log submits an entry without blocking. Saturated queue or a logger that
// already began shutdown drops the entry with a warning: audit is best-effort
// durability, not a transactional ledger, and the triggering operation must
// never stall or fail because of it.
func (a *asyncAuditLogger) Log(entry *auditDomain.Entry) {
	if entry == nil {
		return
	}

	// The read lock pins the queue open: Shutdown flips accepting and closes
	// the queue under the write lock, so a send that observed accepting can
	// never hit a closed channel.
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.accepting {
		a.logger.Warn("audit entry dropped: logger is shut down",
			slog.String("action", string(entry.Action)),
			slog.String("principal", entry.Principal))
		return
	}

	select {
	case a.queue <- entry:
	default:
		a.logger.Warn("audit entry dropped: queue is full",
			slog.String("action", string(entry.Action)),
			slog.String("principal", entry.Principal))
	}
}

// List retrieves recorded entries for a project.
func (a *asyncAuditLogger) List(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.Entry, error) {
	entries, err := a.entryRepo.List(ctx, projectID, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	return entries, nil
}

// Shutdown stops accepting entries, closes the queue and waits for the
// workers to drain it, bounded by the context deadline.
func (a *asyncAuditLogger) Shutdown(ctx context.Context) error {
	var err error
	a.shutdown.Do(func() {
		a.mu.Lock()
		a.accepting = false
		close(a.queue)
		a.mu.Unlock()

		done := make(chan error, 1)
		go func() {
			done <- a.group.Wait()
		}()

		select {
		case err = <-done:
		case <-ctx.Done():
			err = fmt.Errorf("audit logger drain interrupted: %w", ctx.Err())
		}
	})
	return err
}

// drain writes queued entries until the queue is closed and empty. Write
// failures are logged and swallowed: they must never escalate into the
// triggering operation's result.
func (a *asyncAuditLogger) drain() error {
	for entry := range a.queue {
		if err := a.entryRepo.Create(context.Background(), entry); err != nil {
			a.logger.Error("failed to write audit entry",
				slog.String("action", string(entry.Action)),
				slog.String("principal", entry.Principal),
				slog.Any("error", err))
		}
	}
	return nil
}

// NewAuditLogger creates an AuditLogger backed by a bounded queue of the
// given size drained by the given number of workers. Use a single worker when
// global entry ordering matters.
func NewAuditLogger(entryRepo EntryRepository, queueSize, workers int, logger *slog.Logger) AuditLogger {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	a := &asyncAuditLogger{
		entryRepo: entryRepo,
		queue:     make(chan *auditDomain.Entry, queueSize),
		accepting: true,
		group:     &errgroup.Group{},
		logger:    logger,
	}

	for i := 0; i < workers; i++ {
		a.group.Go(a.drain)
	}

	return a
}
