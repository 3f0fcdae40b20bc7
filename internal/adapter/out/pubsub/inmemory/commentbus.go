package inmemory

import (
	"context"
	"errors"
	"sync"

	"postboard/internal/model"
)

var ErrClosed = errors.New("comment bus closed")

// CommentBus fans newly created comments out to the subscribers of their post.
// Slow subscribers miss events instead of blocking publishers.
type CommentBus struct {
	mu     sync.RWMutex
	subs   map[int64]map[chan model.Comment]struct{}
	buf    int
	closed bool
}

func New(buf int) *CommentBus {
	if buf <= 0 {
		buf = 64
	}
	return &CommentBus{
		subs: make(map[int64]map[chan model.Comment]struct{}),
		buf:  buf,
	}
}

// Subscribe returns a channel that is closed once ctx is done or the bus is closed.
func (b *CommentBus) Subscribe(ctx context.Context, postID int64) (<-chan model.Comment, error) {
	ch := make(chan model.Comment, b.buf)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	if b.subs[postID] == nil {
		b.subs[postID] = make(map[chan model.Comment]struct{})
	}
	b.subs[postID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(postID, ch)
	}()

	return ch, nil
}

func (b *CommentBus) unsubscribe(postID int64, ch chan model.Comment) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set := b.subs[postID]
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(b.subs, postID)
	}
	close(ch)
}

func (b *CommentBus) Publish(_ context.Context, postID int64, c model.Comment) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	for ch := range b.subs[postID] {
		select {
		case ch <- c:
		default:
		}
	}
	return nil
}

// Close ends every subscription. Later calls to Subscribe and Publish fail.
func (b *CommentBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for postID, set := range b.subs {
		for ch := range set {
			close(ch)
		}
		delete(b.subs, postID)
	}
}

// Subscribers reports how many listeners a post currently has.
func (b *CommentBus) Subscribers(postID int64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[postID])
}
