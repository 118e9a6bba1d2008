package changefeed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_FiltersByShow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker(4, nil)
	all := broker.Subscribe(ctx, "")
	onlyS1 := broker.Subscribe(ctx, "s1")

	broker.Publish(Change{Collection: CollectionTimeEntries, Op: OpCreated, ShowID: "s2", ID: "t1"})
	broker.Publish(Change{Collection: CollectionExpenses, Op: OpCreated, ShowID: "s1", ID: "e1"})

	first := <-all
	require.Equal(t, "t1", first.ID)
	require.False(t, first.At.IsZero())
	second := <-all
	require.Equal(t, "e1", second.ID)

	got := <-onlyS1
	require.Equal(t, "e1", got.ID)
	require.Equal(t, CollectionExpenses, got.Collection)
	select {
	case extra := <-onlyS1:
		t.Fatalf("unexpected change %+v", extra)
	default:
	}
}

func TestBroker_DropsWhenFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker(1, nil)
	ch := broker.Subscribe(ctx, "s1")

	broker.Publish(Change{ShowID: "s1", ID: "a"})
	broker.Publish(Change{ShowID: "s1", ID: "b"})

	require.Equal(t, int64(1), broker.Dropped())
	require.Equal(t, "a", (<-ch).ID)
}

func TestBroker_UnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	broker := NewBroker(1, nil)
	ch := broker.Subscribe(ctx, "")
	require.Equal(t, 1, broker.Subscribers())

	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
	require.Equal(t, 0, broker.Subscribers())

	// publishing after unsubscribe must not panic
	broker.Publish(Change{ShowID: "s1"})
}
