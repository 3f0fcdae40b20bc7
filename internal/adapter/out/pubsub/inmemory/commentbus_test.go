package inmemory

import (
	"context"
	"testing"
	"time"

	"postboard/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCommentBus_PublishReachesPostSubscribers(t *testing.T) {
	t.Parallel()

	bus := New(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := bus.Subscribe(ctx, 1)
	require.NoError(t, err)
	b, err := bus.Subscribe(ctx, 1)
	require.NoError(t, err)
	other, err := bus.Subscribe(ctx, 2)
	require.NoError(t, err)

	c := model.Comment{ID: 10, PostID: 1, Content: "hi"}
	require.NoError(t, bus.Publish(context.Background(), 1, c))

	for _, ch := range []<-chan model.Comment{a, b} {
		select {
		case got := <-ch:
			require.Equal(t, c, got)
		case <-time.After(time.Second):
			t.Fatal("comment not delivered")
		}
	}

	select {
	case got := <-other:
		t.Fatalf("unexpected delivery: %+v", got)
	default:
	}
}

func TestCommentBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	bus := New(1)
	ch, err := bus.Subscribe(context.Background(), 1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), 1, model.Comment{ID: int64(i)}))
	}

	got := <-ch
	require.Equal(t, int64(0), got.ID)
}

func TestCommentBus_UnsubscribeOnCancel(t *testing.T) {
	t.Parallel()

	bus := New(0)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 1, bus.Subscribers(7))

	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	require.Equal(t, 0, bus.Subscribers(7))
}

func TestCommentBus_Close(t *testing.T) {
	t.Parallel()

	bus := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, 1)
	require.NoError(t, err)

	bus.Close()
	bus.Close()

	_, ok := <-ch
	require.False(t, ok)

	_, err = bus.Subscribe(ctx, 1)
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, bus.Publish(ctx, 1, model.Comment{}), ErrClosed)
}
