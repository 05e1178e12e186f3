package cache

import "context"

var _ Store = Noop{}

// Noop disables caching: every Get misses and writes are dropped.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte) error   { return nil }
func (Noop) Delete(context.Context, string) error        { return nil }
func (Noop) Close() error                                { return nil }
