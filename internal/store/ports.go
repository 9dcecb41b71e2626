package store

import "context"

// Ports for the invoice counter storage.
type (
	// KV is a string key-value store. Get reports found=false for missing keys.
	KV interface {
		Get(ctx context.Context, key string) (value string, found bool, err error)
		Set(ctx context.Context, key, value string) error
	}

	// Incrementer is implemented by stores that can bump an integer counter
	// atomically. Stored values are read as ParseCounter reads them.
	Incrementer interface {
		Incr(ctx context.Context, key string) (int64, error)
	}

	// Pinger is implemented by stores that can report their health.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
