package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	auditDomain "github.com/allisson/secretstore/internal/audit/domain"
	"github.com/allisson/secretstore/internal/audit/usecase/mocks"
)

// recordingRepo captures written entries in order.
type recordingRepo struct {
	mu      sync.Mutex
	entries []*auditDomain.Entry
	started chan struct{} // when non-nil, signals that Create was entered
	gate    chan struct{} // when non-nil, Create blocks until the gate closes
	err     error
}

func (r *recordingRepo) Create(_ context.Context, entry *auditDomain.Entry) error {
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.gate != nil {
		<-r.gate
	}
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingRepo) List(
	_ context.Context,
	_ uuid.UUID,
	_, _ int,
	_, _ *time.Time,
) ([]*auditDomain.Entry, error) {
	return nil, nil
}

func (r *recordingRepo) written() []*auditDomain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*auditDomain.Entry(nil), r.entries...)
}

func newEntry(secretName string) *auditDomain.Entry {
	return auditDomain.NewEntry(
		"",
		auditDomain.ActionCreateSecret,
		auditDomain.StatusSuccess,
		"svc-a",
		"",
		uuid.Must(uuid.NewV7()),
		secretName,
	)
}

func TestAuditLogger_LogAndDrain(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &recordingRepo{}
	logger := NewAuditLogger(repo, 16, 1, slog.Default())

	var submitted []*auditDomain.Entry
	for i := 0; i < 5; i++ {
		entry := newEntry(fmt.Sprintf("secret-%d", i))
		submitted = append(submitted, entry)
		logger.Log(entry)
	}

	require.NoError(t, logger.Shutdown(t.Context()))

	// A single worker preserves submission order.
	written := repo.written()
	require.Len(t, written, 5)
	for i, entry := range submitted {
		assert.Equal(t, entry.ID, written[i].ID)
	}
}

func TestAuditLogger_DropsWhenQueueFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	gate := make(chan struct{})
	repo := &recordingRepo{gate: gate, started: make(chan struct{}, 8)}
	logger := NewAuditLogger(repo, 1, 1, slog.Default())

	// First entry occupies the worker.
	logger.Log(newEntry("held"))
	<-repo.started

	// Second fills the queue, third overflows and is dropped without blocking.
	logger.Log(newEntry("queued"))
	logger.Log(newEntry("overflow"))

	close(gate)
	require.NoError(t, logger.Shutdown(t.Context()))

	written := repo.written()
	require.Len(t, written, 2)
	assert.Equal(t, "held", written[0].SecretName)
	assert.Equal(t, "queued", written[1].SecretName)
}

func TestAuditLogger_LogAfterShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &recordingRepo{}
	logger := NewAuditLogger(repo, 16, 1, slog.Default())

	require.NoError(t, logger.Shutdown(t.Context()))

	// Must not panic on the closed queue; the entry is dropped.
	logger.Log(newEntry("late"))
	assert.Empty(t, repo.written())
}

func TestAuditLogger_ConcurrentLogDuringShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A size-1 queue maximizes contention on the shutdown window. Submissions
	// racing Shutdown must be written or dropped, never panic with a send on
	// the closed queue.
	for round := 0; round < 200; round++ {
		repo := &recordingRepo{}
		logger := NewAuditLogger(repo, 1, 1, quiet)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for i := 0; i < 50; i++ {
					logger.Log(newEntry("raced"))
				}
			}()
		}

		close(start)
		require.NoError(t, logger.Shutdown(t.Context()))
		wg.Wait()
	}
}

func TestAuditLogger_ShutdownIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &recordingRepo{}
	logger := NewAuditLogger(repo, 16, 1, slog.Default())

	require.NoError(t, logger.Shutdown(t.Context()))
	require.NoError(t, logger.Shutdown(t.Context()))
}

func TestAuditLogger_ShutdownTimeout(t *testing.T) {
	gate := make(chan struct{})
	repo := &recordingRepo{gate: gate}
	logger := NewAuditLogger(repo, 16, 1, slog.Default())

	logger.Log(newEntry("stuck"))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	err := logger.Shutdown(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Release the worker so it can exit.
	close(gate)
	goleak.VerifyNone(t)
}

func TestAuditLogger_WriteFailuresAreSwallowed(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &recordingRepo{err: fmt.Errorf("storage is down")}
	logger := NewAuditLogger(repo, 16, 1, slog.Default())

	logger.Log(newEntry("doomed"))

	// Shutdown still drains cleanly.
	require.NoError(t, logger.Shutdown(t.Context()))
	assert.Empty(t, repo.written())
}

func TestAuditLogger_List(t *testing.T) {
	defer goleak.VerifyNone(t)

	projectID := uuid.Must(uuid.NewV7())
	expected := []*auditDomain.Entry{newEntry("db-password")}

	entryRepo := &mocks.MockEntryRepository{}
	entryRepo.On("List", mock.Anything, projectID, 0, 50, (*time.Time)(nil), (*time.Time)(nil)).
		Return(expected, nil)

	logger := NewAuditLogger(entryRepo, 16, 1, slog.Default())
	defer func() { _ = logger.Shutdown(context.Background()) }()

	entries, err := logger.List(t.Context(), projectID, 0, 50, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, expected, entries)
	entryRepo.AssertExpectations(t)
}
