package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chirp-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func notif(id, userID string, ts time.Time) domain.Notification {
	return domain.Notification{ID: id, UserID: userID, Type: domain.NotificationTypeInApp, Title: id, Timestamp: ts}
}

func ids(ns []domain.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestListByUser_UnknownUser_Empty(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	got, err := r.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_SortedNewestFirst(t *testing.T) {
	r := NewNotificationRepo()
	ctx := context.Background()
	for _, n := range []domain.Notification{
		notif("b", "u1", base.Add(2*time.Minute)),
		notif("a", "u1", base),
		notif("c", "u1", base.Add(5*time.Minute)),
		notif("x", "u2", base.Add(10*time.Minute)),
	} {
		n := n
		require.NoError(t, r.Put(ctx, &n))
	}
	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
}

func TestListByUser_TiesAreStable(t *testing.T) {
	r := NewNotificationRepo()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		n := notif(fmt.Sprintf("n%d", i), "u1", base)
		require.NoError(t, r.Put(ctx, &n))
	}
	first, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"n4", "n3", "n2", "n1", "n0"}, ids(first))
	for i := 0; i < 10; i++ {
		again, err := r.ListByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(again))
	}
}

func TestSeed_Scenario(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	assert.Equal(t, 4, r.Len())

	got, err := r.ListByUser(context.Background(), domain.DemoUserID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"notif-1", "notif-2"}, ids(got))
	assert.False(t, got[0].Read)
	assert.True(t, got[1].Read)
	assert.Equal(t, "high", got[0].Metadata["priority"])
}

func TestPut_DuplicateID_Conflict(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	dup := notif("notif-1", "u1", base)
	err := r.Put(context.Background(), &dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 4, r.Len())
}

func TestGet_NotFound(t *testing.T) {
	r := NewNotificationRepo()
	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReturnedRecordsDoNotAliasStore(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	ctx := context.Background()

	got, err := r.Get(ctx, "notif-1")
	require.NoError(t, err)
	got.Read = true
	got.Metadata["priority"] = "low"

	again, err := r.Get(ctx, "notif-1")
	require.NoError(t, err)
	assert.False(t, again.Read)
	assert.Equal(t, "high", again.Metadata["priority"])
}

func TestPut_CopiesInput(t *testing.T) {
	r := NewNotificationRepo()
	ctx := context.Background()
	n := notif("n1", "u1", base)
	n.Metadata = map[string]any{"k": "v"}
	require.NoError(t, r.Put(ctx, &n))
	n.Metadata["k"] = "changed"

	got, err := r.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Metadata["k"])
}

func TestMarkAsRead_OnlyTarget(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	ctx := context.Background()
	before, err := r.ListByUser(ctx, SeedUserID)
	require.NoError(t, err)

	n, err := r.MarkAsRead(ctx, "notif-1")
	require.NoError(t, err)
	assert.True(t, n.Read)
	assert.Equal(t, base.Add(-time.Hour), n.Timestamp)

	after, err := r.ListByUser(ctx, SeedUserID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	mine, err := r.ListByUser(ctx, domain.DemoUserID)
	require.NoError(t, err)
	assert.True(t, mine[0].Read)
	assert.True(t, mine[1].Read)
}

func TestMarkAsRead_Idempotent(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	ctx := context.Background()
	first, err := r.MarkAsRead(ctx, "notif-2")
	require.NoError(t, err)
	second, err := r.MarkAsRead(ctx, "notif-2")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarkAsRead_NotFound(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	n, err := r.MarkAsRead(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, n)
}

func TestMarkAllAsRead(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	ctx := context.Background()
	others, err := r.ListByUser(ctx, SeedUserID)
	require.NoError(t, err)

	got, err := r.MarkAllAsRead(ctx, domain.DemoUserID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, n := range got {
		assert.True(t, n.Read)
	}

	othersAfter, err := r.ListByUser(ctx, SeedUserID)
	require.NoError(t, err)
	assert.Equal(t, others, othersAfter)
}

func TestMarkAllAsRead_TwiceEqualsOnce(t *testing.T) {
	ctx := context.Background()
	once := NewNotificationRepo(Seed(base)...)
	twice := NewNotificationRepo(Seed(base)...)

	_, err := once.MarkAllAsRead(ctx, domain.DemoUserID)
	require.NoError(t, err)
	_, err = twice.MarkAllAsRead(ctx, domain.DemoUserID)
	require.NoError(t, err)
	_, err = twice.MarkAllAsRead(ctx, domain.DemoUserID)
	require.NoError(t, err)

	for _, u := range []string{domain.DemoUserID, SeedUserID} {
		a, err := once.ListByUser(ctx, u)
		require.NoError(t, err)
		b, err := twice.ListByUser(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestMarkAllAsRead_UnknownUser_Empty(t *testing.T) {
	r := NewNotificationRepo(Seed(base)...)
	got, err := r.MarkAllAsRead(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestConcurrentWritesAreNotLost(t *testing.T) {
	r := NewNotificationRepo()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			n := notif(fmt.Sprintf("n%d", i), "u1", base.Add(time.Duration(i)*time.Second))
			assert.NoError(t, r.Put(ctx, &n))
		}(i)
		go func() {
			defer wg.Done()
			_, err := r.MarkAllAsRead(ctx, "u1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
