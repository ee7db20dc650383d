package allocation

import (
	"errors"
	"fmt"

	"github.com/marketpos/backend/internal/money"
)

// ErrNoPools reports that a payout was requested but no pools exist at all,
// i.e. there are no active payment methods to draw from.
var ErrNoPools = errors.New("no payment pools available")

// ValidationError reports bad form input: an unresolvable vendor or payment
// method, a missing amount, or a malformed share type. The Field names the
// offending input so the caller can point at it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// InsufficientPoolError reports a manual assignment that asked a specific
// pool for more than it holds. This is a hard failure: the admin
// overcommitted the pool, and silently capping the payment would hide it.
type InsufficientPoolError struct {
	PoolName  string
	Requested money.Money
	Available money.Money
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("pool %q holds %s but %s was requested",
		e.PoolName, e.Available, e.Requested)
}
