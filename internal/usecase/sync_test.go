package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mite-scraper/internal/domain"
)

type fakeTracker struct {
	entries   []domain.TimeEntry
	projects  []domain.Project
	customers []domain.Customer
	block     chan struct{} // when set, ListTimeEntries waits for it to close
	started   chan struct{}
}

func (f *fakeTracker) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.entries, nil
}

func (f *fakeTracker) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return f.projects, nil
}

func (f *fakeTracker) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return f.customers, nil
}

type fakeSink struct {
	entries   int
	projects  int
	customers int
}

func (f *fakeSink) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	f.entries += len(entries)
	return nil
}

func (f *fakeSink) SyncProjects(ctx context.Context, projects []domain.Project) error {
	f.projects += len(projects)
	return nil
}

func (f *fakeSink) SyncCustomers(ctx context.Context, customers []domain.Customer) error {
	f.customers += len(customers)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunSyncsAllResources(t *testing.T) {
	tracker := &fakeTracker{
		entries:   []domain.TimeEntry{{ID: 1, Minutes: 30}, {ID: 2, Minutes: 45}},
		projects:  []domain.Project{{ID: 10, Name: "p"}},
		customers: []domain.Customer{{ID: 20, Name: "c"}},
	}
	sink := &fakeSink{}
	uc := &SyncUseCase{Log: testLogger(), Tracker: tracker, Sink: sink}

	err := uc.Run(context.Background(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, sink.entries)
	assert.Equal(t, 1, sink.projects)
	assert.Equal(t, 1, sink.customers)
}

func TestRunRequiresDependencies(t *testing.T) {
	uc := &SyncUseCase{Log: testLogger()}
	err := uc.Run(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
}

func TestRunRejectsConcurrentSync(t *testing.T) {
	tracker := &fakeTracker{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	uc := &SyncUseCase{Log: testLogger(), Tracker: tracker, Sink: &fakeSink{}}

	done := make(chan error, 1)
	go func() {
		done <- uc.Run(context.Background(), time.Now().Add(-time.Hour), time.Now())
	}()
	<-tracker.started

	err := uc.Run(context.Background(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(tracker.block)
	require.NoError(t, <-done)
}
