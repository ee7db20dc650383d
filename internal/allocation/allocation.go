// Package allocation implements the fund allocation engine: given the
// invoices, catalog, and per-run form input, it computes a payout plan
// describing how much of each payment-method pool goes to which vendor
// and why.
//
// The engine is pure computation over an in-memory snapshot. Every run
// builds fresh pool and allocation state from its inputs, so identical
// inputs always produce identical plans and a run can be re-triggered on
// every form change without carrying state between calls.
//
// A run proceeds in three passes, in this exact order:
//
//  1. Shared expenses adjust each vendor's expected sub-total and write
//     reimbursement ledger entries. No pool money moves in this pass.
//  2. Manual assignments pay vendors from the specific pools the admin
//     named. Validation here is strict: an unknown vendor, an unknown
//     pool, or an assignment exceeding the pool's balance fails the run.
//  3. Automatic settlement drains the pools, in pool order, until every
//     vendor's expected sub-total is covered. When one pool runs dry the
//     remainder carries over to the next; when all pools run dry the
//     vendor's shortfall is recorded on the plan rather than hidden.
package allocation

import (
	"github.com/marketpos/backend/internal/money"
)

// Type classifies why an allocation line exists.
type Type string

const (
	// TypeManual is an admin-specified assignment from a specific pool.
	TypeManual Type = "manual"

	// TypeExpense is a shared-expense reimbursement ledger entry.
	TypeExpense Type = "expense"

	// TypeAuto is money disbursed by automatic settlement.
	TypeAuto Type = "auto"
)

// Allocation is one line of a vendor's payout plan. Amounts are signed:
// a negative expense entry means the vendor owes that share to the payer
// of a shared expense.
type Allocation struct {
	Amount money.Money `json:"amount"`
	Type   Type        `json:"type"`

	// PaymentMethodID is the pool the money came from. Empty for expense
	// ledger entries, which move no pool money.
	PaymentMethodID string `json:"paymentMethodId,omitempty"`

	// Description is a human-readable reason, e.g. the expense name.
	Description string `json:"description,omitempty"`
}

// VendorAllocation is one vendor's slice of the payout plan. It is created
// at the start of a run, mutated through the run, and returned as part of
// the final plan; it is never persisted.
type VendorAllocation struct {
	VendorID string `json:"vendorId"`

	// EarnedSubTotal is what the vendor's items brought in, before any
	// shared-expense adjustment.
	EarnedSubTotal money.Money `json:"earnedSubTotal"`

	// ExpectedSubTotal is the settlement target: earnings adjusted up or
	// down by shared-expense reimbursements. May go negative when a vendor
	// owes more than they earned; negative targets are settled by paying
	// nothing, never by issuing a negative payout.
	ExpectedSubTotal money.Money `json:"expectedSubTotal"`

	// AllocationTotal is the sum disbursed so far.
	AllocationTotal money.Money `json:"allocationTotal"`

	// Allocations is the itemized list of disbursements, in the order they
	// were made.
	Allocations []Allocation `json:"allocations"`

	// Shortfall is the part of ExpectedSubTotal that could not be paid
	// because every pool ran dry. Zero on a fully funded run.
	Shortfall money.Money `json:"shortfall"`
}

// Unpaid returns how much of the expected sub-total is still outstanding.
func (v *VendorAllocation) Unpaid() money.Money {
	return v.ExpectedSubTotal.Subtract(v.AllocationTotal)
}

// record appends a disbursement line and keeps the running total current.
func (v *VendorAllocation) record(a Allocation) {
	v.Allocations = append(v.Allocations, a)
	v.AllocationTotal = v.AllocationTotal.Add(a.Amount)
}

// Pool is a bucket of collected money for one payment method, mutable
// working state during a single run. Pools are rebuilt fresh from the
// invoices on every run and destroyed at the end; they are never persisted
// or reused.
type Pool struct {
	PaymentMethodID string      `json:"paymentMethodId"`
	Name            string      `json:"name"`
	Balance         money.Money `json:"balance"`
}

// Result is the outcome of a settlement run.
type Result struct {
	// PayoutPlan maps vendor ID to that vendor's allocations. Iterate via
	// the vendor slice the run was given to get a stable order.
	PayoutPlan map[string]*VendorAllocation `json:"payoutPlan"`

	// Reimbursements is the shared-expense ledger: per vendor, the signed
	// adjustments that moved their expected sub-total.
	Reimbursements map[string][]Allocation `json:"reimbursements"`

	// Pools holds the remaining balances after the run, in pool order.
	Pools []Pool `json:"pools"`

	// PoolTotal is the sum of the initial pool balances.
	PoolTotal money.Money `json:"poolTotal"`
}

// TotalAllocated sums every vendor's disbursed total.
func (r *Result) TotalAllocated() money.Money {
	total := money.Zero()
	for _, va := range r.PayoutPlan {
		total = total.Add(va.AllocationTotal)
	}
	return total
}

// TotalShortfall sums every vendor's unpaid remainder.
func (r *Result) TotalShortfall() money.Money {
	total := money.Zero()
	for _, va := range r.PayoutPlan {
		total = total.Add(va.Shortfall)
	}
	return total
}
