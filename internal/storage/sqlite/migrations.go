package sqlite

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// schema contains the SQL statements to set up the database. These run on
// startup to ensure the tables exist. All monetary columns are INTEGER
// minor units (cents); REAL never stores money.
const schema = `
CREATE TABLE IF NOT EXISTS vendors (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    vendor_id TEXT NOT NULL,
    name TEXT NOT NULL,
    price INTEGER NOT NULL DEFAULT 0,
    stock INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (vendor_id) REFERENCES vendors(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payment_methods (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    active INTEGER NOT NULL DEFAULT 1,
    flat_fee INTEGER NOT NULL DEFAULT 0,
    percent_fee_bps INTEGER NOT NULL DEFAULT 0,
    round_to_quarter INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS invoices (
    id TEXT PRIMARY KEY,
    timestamp INTEGER NOT NULL,
    payment_method_id TEXT NOT NULL,
    check_number TEXT NOT NULL DEFAULT '',
    archived INTEGER NOT NULL DEFAULT 0,
    sub_total INTEGER NOT NULL,
    sales_tax INTEGER NOT NULL,
    processing_fees INTEGER NOT NULL,
    total INTEGER NOT NULL,
    FOREIGN KEY (payment_method_id) REFERENCES payment_methods(id)
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    invoice_id TEXT NOT NULL,
    item_id TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price_per INTEGER NOT NULL,
    FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE,
    FOREIGN KEY (item_id) REFERENCES items(id)
);

CREATE TABLE IF NOT EXISTS global_config (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    sales_tax_rate_bps INTEGER NOT NULL,
    state_tax_share_bps INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_items_vendor_id ON items(vendor_id);
CREATE INDEX IF NOT EXISTS idx_invoices_payment_method_id ON invoices(payment_method_id);
CREATE INDEX IF NOT EXISTS idx_transactions_invoice_id ON transactions(invoice_id);
CREATE INDEX IF NOT EXISTS idx_transactions_item_id ON transactions(item_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// seedDefaults inserts the stock payment methods and the default
// configuration when the tables are empty: 6% sales tax, a 10% state
// share, and the four ways the market takes money. Cash is seeded first
// so it is the first settlement pool.
func seedDefaults(db *sql.DB) error {
	var methods int
	if err := db.QueryRow("SELECT COUNT(*) FROM payment_methods").Scan(&methods); err != nil {
		return err
	}
	if methods == 0 {
		defaults := []struct {
			name           string
			flatFee        int64
			percentFeeBps  int64
			roundToQuarter bool
		}{
			{name: "Cash", roundToQuarter: true},
			{name: "Card", flatFee: 50, percentFeeBps: 350},
			{name: "Venmo"},
			{name: "Check"},
		}
		now := time.Now().Unix()
		for i, m := range defaults {
			_, err := db.Exec(
				`INSERT INTO payment_methods (id, name, active, flat_fee, percent_fee_bps, round_to_quarter, created_at)
				 VALUES (?, ?, 1, ?, ?, ?, ?)`,
				uuid.New().String(), m.name, m.flatFee, m.percentFeeBps, boolToInt(m.roundToQuarter), now+int64(i),
			)
			if err != nil {
				return err
			}
		}
	}

	_, err := db.Exec(
		`INSERT INTO global_config (id, sales_tax_rate_bps, state_tax_share_bps)
		 VALUES (1, 600, 1000)
		 ON CONFLICT (id) DO NOTHING`,
	)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
