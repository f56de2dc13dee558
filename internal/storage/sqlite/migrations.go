package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: people must be created before the split tables due to foreign
// key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    amount INTEGER NOT NULL,
    due_date TEXT NOT NULL,
    split_mode TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_splits (
    bill_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    value REAL NOT NULL,
    PRIMARY KEY (bill_id, person_id),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE,
    FOREIGN KEY (person_id) REFERENCES people(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS mortgages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    original_principal INTEGER NOT NULL,
    current_principal INTEGER NOT NULL,
    interest_rate_apy REAL NOT NULL,
    term_months INTEGER NOT NULL,
    start_date TEXT NOT NULL,
    payment_day INTEGER NOT NULL,
    scheduled_payment INTEGER NOT NULL,
    escrow_taxes INTEGER NOT NULL DEFAULT 0,
    escrow_insurance INTEGER NOT NULL DEFAULT 0,
    escrow_mortgage_insurance INTEGER NOT NULL DEFAULT 0,
    escrow_hoa INTEGER NOT NULL DEFAULT 0,
    split_mode TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS mortgage_splits (
    mortgage_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    value REAL NOT NULL,
    PRIMARY KEY (mortgage_id, person_id),
    FOREIGN KEY (mortgage_id) REFERENCES mortgages(id) ON DELETE CASCADE,
    FOREIGN KEY (person_id) REFERENCES people(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    bill_id TEXT,
    mortgage_id TEXT,
    amount INTEGER NOT NULL,
    paid_date TEXT NOT NULL,
    method TEXT,
    note TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE,
    FOREIGN KEY (mortgage_id) REFERENCES mortgages(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payment_allocations (
    payment_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    PRIMARY KEY (payment_id, person_id),
    FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE,
    FOREIGN KEY (person_id) REFERENCES people(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bill_splits_bill_id ON bill_splits(bill_id);
CREATE INDEX IF NOT EXISTS idx_mortgage_splits_mortgage_id ON mortgage_splits(mortgage_id);
CREATE INDEX IF NOT EXISTS idx_payments_bill_id ON payments(bill_id);
CREATE INDEX IF NOT EXISTS idx_payments_mortgage_id ON payments(mortgage_id);
CREATE INDEX IF NOT EXISTS idx_payment_allocations_payment_id ON payment_allocations(payment_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
