package allocation

import (
	"fmt"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// applySharedExpenses adjusts every vendor's expected sub-total for each
// shared expense and returns the reimbursement ledger. Adjustments are
// bookkeeping only: no pool money moves here, automatic settlement later
// pays out against the adjusted targets.
//
// Every expense nets to zero across the vendors: whatever the other
// vendors are debited, the payer is credited, so the run-wide conservation
// invariant is untouched.
func (r *run) applySharedExpenses(expenses []models.SharedExpense) (map[string][]Allocation, error) {
	ledger := make(map[string][]Allocation)

	for i, expense := range expenses {
		payer, ok := r.vendors[expense.VendorID]
		if !ok {
			return nil, &ValidationError{
				Field:   "vendorId",
				Message: fmt.Sprintf("shared expense %q names unknown vendor %q", expense.Name, expense.VendorID),
			}
		}
		if !expense.Amount.IsPositive() {
			return nil, &ValidationError{
				Field:   "amount",
				Message: fmt.Sprintf("shared expense %q needs a positive amount", expense.Name),
			}
		}

		switch expense.ShareType {
		case models.ShareEqual:
			r.applyEqualSplit(payer, expense, ledger)
		case models.ShareEarnings:
			r.applyEarningsSplit(payer, expense, ledger)
		default:
			return nil, &ValidationError{
				Field:   "shareType",
				Message: fmt.Sprintf("shared expense %d has unknown share type %q", i, expense.ShareType),
			}
		}
	}

	return ledger, nil
}

// applyEqualSplit charges every vendor except the payer an equal share of
// the expense: floor(100/N) percent each, so the split never
// over-distributes and the sub-percent remainder stays with the payer.
// The payer is credited the sum of the charged shares.
func (r *run) applyEqualSplit(payer *VendorAllocation, expense models.SharedExpense, ledger map[string][]Allocation) {
	n := int64(len(r.order))
	if n < 2 {
		// Nobody to share with.
		return
	}

	share := expense.Amount.Percentage(100 / n)

	for _, vendorID := range r.order {
		if vendorID == payer.VendorID {
			continue
		}
		va := r.vendors[vendorID]
		va.ExpectedSubTotal = va.ExpectedSubTotal.Subtract(share)
		ledger[vendorID] = append(ledger[vendorID], Allocation{
			Amount:      share.Negate(),
			Type:        TypeExpense,
			Description: expense.Name,
		})
	}

	credit := share.Multiply(n - 1)
	payer.ExpectedSubTotal = payer.ExpectedSubTotal.Add(credit)
	ledger[payer.VendorID] = append(ledger[payer.VendorID], Allocation{
		Amount:      credit,
		Type:        TypeExpense,
		Description: expense.Name,
	})
}

// applyEarningsSplit charges each vendor a share proportional to their
// current expected sub-total relative to the total collected pool,
// truncated to whole percentage points. The truncation remainder is folded
// into the payer's own ratio before allocating, so the expense amount is
// partitioned exactly and no minor units leak out of the ledger.
func (r *run) applyEarningsSplit(payer *VendorAllocation, expense models.SharedExpense, ledger map[string][]Allocation) {
	if !r.poolTotal.IsPositive() {
		// No earnings to proportion against.
		return
	}

	ratios := make([]int64, len(r.order))
	payerIdx := -1
	var charged int64
	for i, vendorID := range r.order {
		if vendorID == payer.VendorID {
			payerIdx = i
			continue
		}
		expected := r.vendors[vendorID].ExpectedSubTotal
		if !expected.IsPositive() {
			continue
		}
		ratios[i] = expected.Amount() * 100 / r.poolTotal.Amount()
		charged += ratios[i]
	}
	if payerIdx < 0 {
		return
	}
	// The payer's bucket is their own share plus the truncation remainder;
	// it is never charged to anyone. Stacked expense credits can push the
	// other vendors' ratios past 100 in total; the payer's bucket then
	// clamps to zero and Allocate charges each vendor ratio/charged of the
	// expense instead of ratio percent, keeping the partition exact rather
	// than collecting more than the expense.
	ratios[payerIdx] = 100 - charged
	if ratios[payerIdx] < 0 {
		ratios[payerIdx] = 0
	}

	shares := expense.Amount.Allocate(ratios...)

	credit := money.Zero()
	for i, vendorID := range r.order {
		if i == payerIdx || shares[i].IsZero() {
			continue
		}
		va := r.vendors[vendorID]
		va.ExpectedSubTotal = va.ExpectedSubTotal.Subtract(shares[i])
		ledger[vendorID] = append(ledger[vendorID], Allocation{
			Amount:      shares[i].Negate(),
			Type:        TypeExpense,
			Description: expense.Name,
		})
		credit = credit.Add(shares[i])
	}

	if credit.IsZero() {
		return
	}
	payer.ExpectedSubTotal = payer.ExpectedSubTotal.Add(credit)
	ledger[payer.VendorID] = append(ledger[payer.VendorID], Allocation{
		Amount:      credit,
		Type:        TypeExpense,
		Description: expense.Name,
	})
}
