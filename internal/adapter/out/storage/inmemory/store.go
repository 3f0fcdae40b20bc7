package inmemory

import (
	"context"
	"sync"

	"postboard/internal/model"
)

// Store holds every table of the in-memory backend behind one lock so that
// foreign keys and cascades can be enforced across tables.
type Store struct {
	mu sync.RWMutex

	users     map[int64]model.User
	postTypes map[int64]model.PostType
	posts     map[int64]model.Post
	comments  map[int64]model.Comment

	lastUserID     int64
	lastPostTypeID int64
	lastPostID     int64
	lastCommentID  int64
}

func NewStore() *Store {
	return &Store{
		users:     make(map[int64]model.User),
		postTypes: make(map[int64]model.PostType),
		posts:     make(map[int64]model.Post),
		comments:  make(map[int64]model.Comment),
	}
}

// post and comment joins; callers hold s.mu
func (s *Store) joinPost(p model.Post) model.Post {
	p.AuthorUsername = s.users[p.AuthorID].Username
	p.PostTypeName = s.postTypes[p.PostTypeID].Name
	return p
}

func (s *Store) joinComment(c model.Comment) model.Comment {
	c.AuthorUsername = s.users[c.AuthorID].Username
	return c
}

type txKey struct{}

// TxManager serializes transactional blocks. There is no rollback: a block
// that fails half-way keeps the writes it already made.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
