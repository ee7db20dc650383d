package allocation

import (
	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// PoolOptions controls which invoice figures make up the allocatable pools.
// The base pool is the invoice sub-totals; fees and taxes are normally held
// back (fees went to the processor, taxes go to the state) but can be
// folded in when the market wants to distribute them too.
type PoolOptions struct {
	IncludeFees  bool
	IncludeTaxes bool
}

// BuildPools aggregates collected money per active payment method across
// the live invoices. Pool order follows the payment-method slice order,
// which the storage layer keeps at creation order, so settlement drains
// methods oldest-first (the seeded "Cash" method first).
//
// Zero-balance pools are kept: the allocation pass discovers emptiness
// lazily while draining, and the reporting pass wants the full list for
// display. Pools are working state for a single run, never persisted.
func BuildPools(invoices []models.Invoice, methods []models.PaymentMethod, opts PoolOptions) []Pool {
	pools := make([]Pool, 0, len(methods))
	for _, method := range methods {
		if !method.Active {
			continue
		}

		balance := money.Zero()
		for _, invoice := range invoices {
			if invoice.Archived || invoice.PaymentMethodID != method.ID {
				continue
			}
			balance = balance.Add(invoice.SubTotal)
			if opts.IncludeFees {
				balance = balance.Add(invoice.ProcessingFees)
			}
			if opts.IncludeTaxes {
				balance = balance.Add(invoice.SalesTax)
			}
		}

		pools = append(pools, Pool{
			PaymentMethodID: method.ID,
			Name:            method.Name,
			Balance:         balance,
		})
	}
	return pools
}
