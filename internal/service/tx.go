package service

import "context"

// Transactor runs fn inside a single storage transaction. Storage calls made
// with the ctx passed to fn join that transaction.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
