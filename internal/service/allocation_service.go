package service

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marketpos/backend/internal/allocation"
	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
	"github.com/marketpos/backend/internal/storage"
)

// cashMethodName identifies the drawer: the seed float and the counted
// bills both live under the payment method literally named "Cash".
const cashMethodName = "Cash"

var settlementRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "marketpos_settlement_runs_total",
	Help: "Settlement engine runs by outcome.",
}, []string{"outcome"})

// AllocationService runs the settlement engine over a fresh snapshot of the
// database and produces the end-of-market reports.
type AllocationService struct {
	store storage.Store
}

// NewAllocationService creates a new AllocationService with the given
// storage backend.
func NewAllocationService(store storage.Store) *AllocationService {
	return &AllocationService{store: store}
}

// AllocationRequest is the admin's form input for a settlement run.
type AllocationRequest struct {
	SharedExpenses []models.SharedExpense `json:"sharedExpenses"`
	AssignedMoney  []models.AssignedMoney `json:"assignedMoney"`

	// IncludeFees and IncludeTaxes widen the pools past the vendors'
	// sub-totals; see allocation.PoolOptions.
	IncludeFees  bool `json:"includeFees"`
	IncludeTaxes bool `json:"includeTaxes"`

	// SeedMoney is the cash float that opened the till. It shows up in the
	// reported cash-on-hand figure but never enters the allocatable pools;
	// it goes back to whoever fronted it.
	SeedMoney money.Money `json:"seedMoney"`
}

// VendorReport is one vendor's row of the allocation report, in a shape the
// admin screens can render directly.
type VendorReport struct {
	VendorID         string                  `json:"vendorId"`
	Name             string                  `json:"name"`
	EarnedSubTotal   money.Money             `json:"earnedSubTotal"`
	ExpectedSubTotal money.Money             `json:"expectedSubTotal"`
	AllocationTotal  money.Money             `json:"allocationTotal"`
	Shortfall        money.Money             `json:"shortfall"`
	Allocations      []allocation.Allocation `json:"allocations"`
	Reimbursements   []allocation.Allocation `json:"reimbursements"`
}

// AllocationReport is the full settlement result, vendors in catalog order.
type AllocationReport struct {
	Vendors        []VendorReport    `json:"vendors"`
	Pools          []allocation.Pool `json:"pools"`
	PoolTotal      money.Money       `json:"poolTotal"`
	TotalAllocated money.Money       `json:"totalAllocated"`
	TotalShortfall money.Money       `json:"totalShortfall"`

	// CashOnHand is the figure to count the drawer against: the cash
	// method's collected total plus the seed money. Card, Venmo and check
	// revenue never reaches the drawer and is excluded.
	CashOnHand money.Money `json:"cashOnHand"`
}

// Allocate snapshots the database and runs the settlement engine. The run is
// pure over the snapshot: nothing is persisted, so the admin can re-run with
// tweaked expenses and assignments until the plan looks right.
func (s *AllocationService) Allocate(ctx context.Context, req AllocationRequest) (*AllocationReport, error) {
	if req.SeedMoney.IsNegative() {
		return nil, invalidf("seed money cannot be negative")
	}

	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.store.ListInvoices(ctx, false)
	if err != nil {
		return nil, err
	}
	methods, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}

	result, err := allocation.Run(allocation.Input{
		Vendors:        vendors,
		Items:          items,
		Invoices:       invoices,
		PaymentMethods: methods,
		SharedExpenses: req.SharedExpenses,
		AssignedMoney:  req.AssignedMoney,
		IncludeFees:    req.IncludeFees,
		IncludeTaxes:   req.IncludeTaxes,
	})
	if err != nil {
		settlementRuns.WithLabelValues("error").Inc()
		slog.Error("Settlement run failed", "error", err)
		return nil, err
	}
	settlementRuns.WithLabelValues("ok").Inc()

	cashOnHand := req.SeedMoney
	for _, t := range allocation.PaymentTotals(invoices, methods) {
		if t.Name == cashMethodName {
			cashOnHand = cashOnHand.Add(t.Total)
		}
	}

	report := &AllocationReport{
		Vendors:        make([]VendorReport, 0, len(vendors)),
		Pools:          result.Pools,
		PoolTotal:      result.PoolTotal,
		TotalAllocated: result.TotalAllocated(),
		TotalShortfall: result.TotalShortfall(),
		CashOnHand:     cashOnHand,
	}
	for _, vendor := range vendors {
		va := result.PayoutPlan[vendor.ID]
		report.Vendors = append(report.Vendors, VendorReport{
			VendorID:         vendor.ID,
			Name:             vendor.Name(),
			EarnedSubTotal:   va.EarnedSubTotal,
			ExpectedSubTotal: va.ExpectedSubTotal,
			AllocationTotal:  va.AllocationTotal,
			Shortfall:        va.Shortfall,
			Allocations:      va.Allocations,
			Reimbursements:   result.Reimbursements[vendor.ID],
		})
	}

	slog.Info("Settlement run complete",
		"vendors", len(vendors),
		"pool_total", report.PoolTotal,
		"allocated", report.TotalAllocated,
		"shortfall", report.TotalShortfall,
	)
	return report, nil
}

// PaymentTotalsReport is the per-method revenue summary.
type PaymentTotalsReport struct {
	Methods  []allocation.PaymentTotal `json:"methods"`
	Grand    allocation.GrandTotal     `json:"grand"`
	StateTax money.Money               `json:"stateTax"`
}

// PaymentTotals aggregates the live invoices per payment method and computes
// the state's slice of the collected sales tax. Methods that took no money
// are dropped from the report; the grand totals cover everything.
func (s *AllocationService) PaymentTotals(ctx context.Context) (*PaymentTotalsReport, error) {
	invoices, err := s.store.ListInvoices(ctx, false)
	if err != nil {
		return nil, err
	}
	methods, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	totals := allocation.PaymentTotals(invoices, methods)
	grand := allocation.Grand(totals)

	nonZero := make([]allocation.PaymentTotal, 0, len(totals))
	for _, t := range totals {
		if t.Total.IsPositive() {
			nonZero = append(nonZero, t)
		}
	}

	return &PaymentTotalsReport{
		Methods:  nonZero,
		Grand:    grand,
		StateTax: allocation.StateTax(grand.Taxes, cfg.StateTaxShareBps),
	}, nil
}

// VendorTotal is one vendor's attributed revenue.
type VendorTotal struct {
	VendorID string      `json:"vendorId"`
	Name     string      `json:"name"`
	SubTotal money.Money `json:"subTotal"`
}

// VendorTotals attributes the live invoices' revenue to vendors without
// running a settlement.
func (s *AllocationService) VendorTotals(ctx context.Context) ([]VendorTotal, error) {
	vendors, err := s.store.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.store.ListInvoices(ctx, false)
	if err != nil {
		return nil, err
	}

	subTotals := allocation.VendorSubTotals(vendors, invoices, items)
	totals := make([]VendorTotal, len(vendors))
	for i, vendor := range vendors {
		totals[i] = VendorTotal{
			VendorID: vendor.ID,
			Name:     vendor.Name(),
			SubTotal: subTotals[vendor.ID],
		}
	}
	return totals, nil
}
