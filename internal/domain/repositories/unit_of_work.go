package repositories

import (
	"context"
)

// UnitOfWork executes a function as one atomic state transition: every
// repository call inside the function either commits as a whole or rolls
// back with no partial effects.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
