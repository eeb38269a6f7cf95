package repositories

import "context"

// TxManager runs a function within a single storage transaction. Repository
// calls made with the context passed to fn join that transaction, so
// multi-row writes (vote replacement, finalization, full-roundtable
// scheduling, question replacement) commit or roll back as one unit.
//
// Serialization of concurrent writers on the same roundtable is delegated to
// the storage layer's transactional isolation, not to in-process locking: the
// engine runs across multiple stateless instances.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
