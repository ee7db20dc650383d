// Package models defines the domain models for the market point-of-sale
// backend.
//
// # Catalog
//
//   - Vendor: an independent seller whose goods go through the shared till
//   - Item: a thing for sale, owned by exactly one vendor
//   - PaymentMethod: how a customer paid, with its fee and rounding rules
//   - GlobalConfig: market-wide settings such as the sales-tax rate
//
// # Sales
//
//   - Invoice: one checkout, with totals snapshotted at sale time
//   - Transaction: one line item on an invoice
//
// Invoices are never deleted; they are archived (soft delete) so that
// historical totals stay reproducible. Only non-archived invoices count
// toward revenue attribution and payout pools.
//
// # Settlement input
//
//   - SharedExpense: a cost one vendor fronted for the group
//   - AssignedMoney: a manual instruction to pay a vendor from a
//     specific payment-method pool
//
// These two are transient form input: they are supplied per settlement run
// and never persisted.
//
// # Design notes
//
// Monetary fields are money.Money (integer minor units), never floats.
// Relationships use ID strings rather than pointers to avoid circular
// references; IDs are UUIDs assigned by the storage layer.
package models
