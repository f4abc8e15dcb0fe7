package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// TransactionManager runs fn inside one transaction. Repositories called with
// the context handed to fn join it; fn may run more than once when the store
// retries a transient failure, so it must not keep state between runs.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
