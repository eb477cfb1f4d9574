package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/mocks"
	"github.com/dstanton/taskminder/internal/platform/mailer"
)

var scanNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestScanner(t *testing.T) (*Scanner, *mocks.MockTaskStore, *mocks.MockMailer) {
	t.Helper()
	taskStore := mocks.NewMockTaskStore()
	mockMailer := mocks.NewMockMailer()
	scanner := NewScanner(taskStore, mockMailer, nil)
	scanner.nowFunc = func() time.Time { return scanNow }
	return scanner, taskStore, mockMailer
}

func dueTask(t *testing.T, store *mocks.MockTaskStore, due time.Time) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(uuid.New(), "write report", &due, "me@example.com")
	require.NoError(t, err)
	store.Tasks[task.ID] = task
	return task
}

func TestScanDispatchesForDueTasks(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)

	today := domain.StartOfDay(scanNow)
	task := dueTask(t, taskStore, today)

	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Scanned: 1, Delivered: 1}, stats)
	assert.Equal(t, []string{"me@example.com"}, mockMailer.Sent)
	require.NotNil(t, taskStore.Tasks[task.ID].LastRemindedAt)
	assert.True(t, domain.SameDay(*taskStore.Tasks[task.ID].LastRemindedAt, scanNow))
}

func TestScanIsIdempotentWithinADay(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)

	today := domain.StartOfDay(scanNow)
	dueTask(t, taskStore, today)

	// First scan delivers and marks
	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Delivered)

	// Second scan the same day finds nothing to send
	stats, err = scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{}, stats)
	assert.Equal(t, 1, mockMailer.SendCount())
}

func TestScanIgnoresOverdueAndFutureTasks(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)

	today := domain.StartOfDay(scanNow)
	dueTask(t, taskStore, today.AddDate(0, 0, -1))
	dueTask(t, taskStore, today.AddDate(0, 0, 1))

	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{}, stats)
	assert.Zero(t, mockMailer.SendCount())
}

func TestScanDoesNotMarkOnFailedSend(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)
	mockMailer.Result = mailer.Failed
	mockMailer.Err = errors.New("smtp connection refused")

	today := domain.StartOfDay(scanNow)
	task := dueTask(t, taskStore, today)

	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Scanned: 1, Failed: 1}, stats)
	assert.Nil(t, taskStore.Tasks[task.ID].LastRemindedAt)

	// A later scan the same day retries the task
	mockMailer.Result = mailer.Delivered
	mockMailer.Err = nil
	stats, err = scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Scanned: 1, Delivered: 1}, stats)
	require.NotNil(t, taskStore.Tasks[task.ID].LastRemindedAt)
}

func TestScanDoesNotMarkOnSkippedSend(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)
	mockMailer.Result = mailer.Skipped

	today := domain.StartOfDay(scanNow)
	task := dueTask(t, taskStore, today)

	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Scanned: 1, Skipped: 1}, stats)
	assert.Nil(t, taskStore.Tasks[task.ID].LastRemindedAt)
}

func TestScanFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)

	today := domain.StartOfDay(scanNow)
	dueTask(t, taskStore, today)
	dueTask(t, taskStore, today)
	dueTask(t, taskStore, today)

	// Fail only the first dispatch
	var calls int
	mockMailer.SendFn = func(ctx context.Context, task *domain.Task, recipient string) (mailer.Result, error) {
		calls++
		if calls == 1 {
			return mailer.Failed, errors.New("smtp connection refused")
		}
		return mailer.Delivered, nil
	}

	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Scanned)
	assert.Equal(t, 2, stats.Delivered)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 3, mockMailer.SendCount())
}

func TestScanSkipsTasksWhoseStateMoved(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)

	today := domain.StartOfDay(scanNow)
	task := dueTask(t, taskStore, today)

	// The store query returns the task, but by dispatch time it is completed
	taskStore.FindDueForReminderFn = func(ctx context.Context, now time.Time) ([]*domain.Task, error) {
		completed := *task
		completed.Completed = true
		return []*domain.Task{&completed}, nil
	}

	stats, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScanStats{Scanned: 1, Skipped: 1}, stats)
	assert.Zero(t, mockMailer.SendCount())
}

func TestScanReportsInProgress(t *testing.T) {
	t.Parallel()
	scanner, taskStore, mockMailer := newTestScanner(t)

	today := domain.StartOfDay(scanNow)
	dueTask(t, taskStore, today)

	sendStarted := make(chan struct{})
	release := make(chan struct{})
	mockMailer.SendFn = func(ctx context.Context, task *domain.Task, recipient string) (mailer.Result, error) {
		close(sendStarted)
		<-release
		return mailer.Delivered, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := scanner.Scan(context.Background())
		assert.NoError(t, err)
	}()

	<-sendStarted
	_, err := scanner.Scan(context.Background())
	assert.ErrorIs(t, err, ErrScanInProgress)

	close(release)
	wg.Wait()
}

func TestScanPropagatesStoreError(t *testing.T) {
	t.Parallel()
	scanner, taskStore, _ := newTestScanner(t)

	storeErr := errors.New("connection reset")
	taskStore.FindDueForReminderFn = func(ctx context.Context, now time.Time) ([]*domain.Task, error) {
		return nil, storeErr
	}

	_, err := scanner.Scan(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
