package service

import "context"

// inlineTx runs fn directly, without a storage transaction.
type inlineTx struct {
	calls int
}

func (t *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func ptrI64(v int64) *int64 { return &v }

func ptrStr(v string) *string { return &v }
