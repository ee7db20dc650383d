package allocation

import (
	"fmt"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// Input is the complete snapshot a settlement run computes over. The
// engine treats everything here as read-only; callers can hand in shared
// slices safely.
type Input struct {
	Vendors        []models.Vendor
	Items          []models.Item
	Invoices       []models.Invoice
	PaymentMethods []models.PaymentMethod

	SharedExpenses []models.SharedExpense
	AssignedMoney  []models.AssignedMoney

	// Pool composition flags, see PoolOptions.
	IncludeFees  bool
	IncludeTaxes bool
}

// run is the mutable state of a single settlement computation. It lives
// for exactly one Run call.
type run struct {
	pools     []Pool
	poolTotal money.Money
	vendors   map[string]*VendorAllocation
	order     []string
}

// Run executes a full settlement over the snapshot and returns the payout
// plan. Validation failures (unknown vendor, unknown pool, overcommitted
// manual assignment) abort the run with an error; pools running dry during
// automatic settlement do not, they show up as per-vendor shortfalls on
// the plan.
func Run(in Input) (*Result, error) {
	subTotals := VendorSubTotals(in.Vendors, in.Invoices, in.Items)
	pools := BuildPools(in.Invoices, in.PaymentMethods, PoolOptions{
		IncludeFees:  in.IncludeFees,
		IncludeTaxes: in.IncludeTaxes,
	})

	r := &run{
		pools:     pools,
		poolTotal: money.Zero(),
		vendors:   make(map[string]*VendorAllocation, len(in.Vendors)),
		order:     make([]string, 0, len(in.Vendors)),
	}
	for _, p := range pools {
		r.poolTotal = r.poolTotal.Add(p.Balance)
	}
	for _, v := range in.Vendors {
		earned := subTotals[v.ID]
		r.vendors[v.ID] = &VendorAllocation{
			VendorID:         v.ID,
			EarnedSubTotal:   earned,
			ExpectedSubTotal: earned,
			AllocationTotal:  money.Zero(),
			Shortfall:        money.Zero(),
		}
		r.order = append(r.order, v.ID)
	}

	// Pass 1: expected sub-total adjustments from shared expenses.
	ledger, err := r.applySharedExpenses(in.SharedExpenses)
	if err != nil {
		return nil, err
	}

	// Pass 2: manual assignments, in input order, strictly validated.
	for _, assigned := range in.AssignedMoney {
		if !assigned.Amount.IsPositive() {
			return nil, &ValidationError{
				Field:   "amount",
				Message: "assigned money needs a positive amount",
			}
		}
		if assigned.PaymentMethodID == "" {
			return nil, &ValidationError{
				Field:   "paymentMethodId",
				Message: "assigned money needs a payment method",
			}
		}
		if err := r.payVendor(assigned.VendorID, assigned.Amount, TypeManual, assigned.PaymentMethodID, "assigned funds"); err != nil {
			return nil, err
		}
	}

	// Pass 3: drain the pools to cover each vendor's remaining target.
	for _, vendorID := range r.order {
		unpaid := r.vendors[vendorID].Unpaid()
		if !unpaid.IsPositive() {
			// Fully settled, possibly overpaid; never claw back.
			continue
		}
		if err := r.payVendor(vendorID, unpaid, TypeAuto, "", ""); err != nil {
			return nil, err
		}
	}

	return &Result{
		PayoutPlan:     r.vendors,
		Reimbursements: ledger,
		Pools:          r.pools,
		PoolTotal:      r.poolTotal,
	}, nil
}

// payVendor disburses amount to a vendor. With a paymentMethodID it pays
// from exactly that pool and fails if the pool is missing or short; with
// none it pays from the first pool with a positive balance and carries any
// remainder over to the next pool, recording a shortfall if every pool
// runs dry. Non-positive amounts are a no-op.
func (r *run) payVendor(vendorID string, amount money.Money, typ Type, paymentMethodID, description string) error {
	va, ok := r.vendors[vendorID]
	if !ok {
		return &ValidationError{
			Field:   "vendorId",
			Message: fmt.Sprintf("unknown vendor %q", vendorID),
		}
	}
	if !amount.IsPositive() {
		return nil
	}
	if len(r.pools) == 0 {
		return ErrNoPools
	}

	if paymentMethodID != "" {
		return r.payFromPool(va, amount, typ, paymentMethodID, description)
	}

	// Carry-over draining: walk the pools in order, taking what each can
	// give, until the amount is covered or everything is dry.
	remaining := amount
	for i := range r.pools {
		pool := &r.pools[i]
		if !pool.Balance.IsPositive() {
			continue
		}
		payment := money.Minimum(pool.Balance, remaining)
		pool.Balance = pool.Balance.Subtract(payment)
		va.record(Allocation{
			Amount:          payment,
			Type:            typ,
			PaymentMethodID: pool.PaymentMethodID,
			Description:     description,
		})
		remaining = remaining.Subtract(payment)
		if remaining.IsZero() {
			return nil
		}
	}

	// Every pool ran dry. Total collected money can legitimately fall short
	// of goods sold (comps, store credit), so this is not an error; the
	// deficit is surfaced on the plan instead.
	va.Shortfall = va.Shortfall.Add(remaining)
	return nil
}

// payFromPool pays from one specific pool. Specific-pool requests never
// carry over and never partially pay.
func (r *run) payFromPool(va *VendorAllocation, amount money.Money, typ Type, paymentMethodID, description string) error {
	var pool *Pool
	for i := range r.pools {
		if r.pools[i].PaymentMethodID == paymentMethodID {
			pool = &r.pools[i]
			break
		}
	}
	if pool == nil {
		return &ValidationError{
			Field:   "paymentMethodId",
			Message: fmt.Sprintf("no pool for payment method %q", paymentMethodID),
		}
	}
	if pool.Balance.LessThan(amount) {
		return &InsufficientPoolError{
			PoolName:  pool.Name,
			Requested: amount,
			Available: pool.Balance,
		}
	}

	pool.Balance = pool.Balance.Subtract(amount)
	va.record(Allocation{
		Amount:          amount,
		Type:            typ,
		PaymentMethodID: pool.PaymentMethodID,
		Description:     description,
	})
	return nil
}
