package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refeitorio/controle-acesso/access"
	"github.com/refeitorio/controle-acesso/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedRecord(id, name string, outcome access.Outcome, at time.Time) access.Record {
	return access.Record{
		ID:         fmt.Sprintf("rec-%s-%d", id, at.UnixNano()),
		EmployeeID: id,
		Name:       name,
		Outcome:    outcome,
		Timestamp:  at,
	}
}

func dayAt(hour, min int) time.Time {
	return time.Date(2025, 10, 19, hour, min, 0, 0, access.Timezone)
}

// =============================================================================
// APPEND + QUERY
// =============================================================================

func TestQueryWindow_OrderedOldestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Inserted out of order on purpose
	require.NoError(t, store.Append(ctx, storedRecord("1002", "Bruno Lima", access.OutcomeGranted, dayAt(12, 15))))
	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeGranted, dayAt(11, 0))))
	require.NoError(t, store.Append(ctx, storedRecord("9999", "Desconhecido", access.OutcomeDeniedUnknown, dayAt(11, 45))))

	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	records, err := store.QueryWindow(ctx, start, end, "", "")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1001", records[0].EmployeeID)
	assert.Equal(t, "9999", records[1].EmployeeID)
	assert.Equal(t, "1002", records[2].EmployeeID)
}

func TestQueryWindow_RestrictedToDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeGranted, dayAt(9, 0))))
	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeGranted,
		time.Date(2025, 10, 20, 9, 0, 0, 0, access.Timezone))))

	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	records, err := store.QueryWindow(ctx, start, end, "", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 19, records[0].Timestamp.In(access.Timezone).Day())
}

func TestQueryWindow_CaseInsensitiveSubstring(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeGranted, dayAt(11, 0))))
	require.NoError(t, store.Append(ctx, storedRecord("1002", "Mariana Costa", access.OutcomeGranted, dayAt(11, 5))))
	require.NoError(t, store.Append(ctx, storedRecord("1003", "Bruno Lima", access.OutcomeGranted, dayAt(11, 10))))

	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	// "ana" matches Ana and mariANA, anywhere in the name
	records, err := store.QueryWindow(ctx, start, end, "nome", "ana")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ana Souza", records[0].Name)
	assert.Equal(t, "Mariana Costa", records[1].Name)

	records, err = store.QueryWindow(ctx, start, end, "matricula", "100")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestQueryWindow_UnknownFieldRejected(t *testing.T) {
	store := newTestStore(t)

	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	_, err = store.QueryWindow(context.Background(), start, end, "status; DROP TABLE acessos", "x")
	assert.Error(t, err)
}

func TestAppend_RoundTripsOutcomeAndInstant(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	at := dayAt(13, 37)
	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeDeniedDuplicate, at)))

	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	records, err := store.QueryWindow(ctx, start, end, "", "")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, access.OutcomeDeniedDuplicate, records[0].Outcome)
	assert.True(t, records[0].Outcome.Denied())
	assert.True(t, records[0].Timestamp.Equal(at), "stored instant must survive the round trip")
}

// =============================================================================
// GRANTED-TODAY CHECK
// =============================================================================

func TestHasGrantedBetween(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeGranted, dayAt(11, 0))))
	require.NoError(t, store.Append(ctx, storedRecord("1002", "Bruno Lima", access.OutcomeDeniedUnknown, dayAt(11, 5))))

	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	granted, err := store.HasGrantedBetween(ctx, "1001", start, end)
	require.NoError(t, err)
	assert.True(t, granted)

	// Denied records do not count as admissions
	granted, err = store.HasGrantedBetween(ctx, "1002", start, end)
	require.NoError(t, err)
	assert.False(t, granted)

	// A grant on another day is outside the window
	nextStart, nextEnd, err := access.DayWindow("2025-10-20")
	require.NoError(t, err)
	granted, err = store.HasGrantedBetween(ctx, "1001", nextStart, nextEnd)
	require.NoError(t, err)
	assert.False(t, granted)
}

// =============================================================================
// RESET
// =============================================================================

func TestDeleteAll_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, storedRecord("1001", "Ana Souza", access.OutcomeGranted, dayAt(11, 0))))
	require.NoError(t, store.Append(ctx, storedRecord("1002", "Bruno Lima", access.OutcomeGranted, dayAt(11, 5))))

	removed, err := store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Deleting an already-empty log is a no-op success
	removed, err = store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
