package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	// TranslateError maps unique violations to gorm.ErrDuplicatedKey, same as
	// the production postgres setup.
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createPoolTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE pools (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		merchant TEXT NOT NULL,
		pool_id TEXT NOT NULL,
		commission_rate INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL,
		total_volume INTEGER NOT NULL DEFAULT 0,
		total_commissions_paid INTEGER NOT NULL DEFAULT 0,
		escrow_authority TEXT NOT NULL,
		relayer TEXT NOT NULL,
		deactivated_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(merchant, pool_id)
	);`)
}

func createAffiliateTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE affiliates (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		pool_address TEXT NOT NULL,
		wallet TEXT NOT NULL,
		ref_id TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		total_earned INTEGER NOT NULL DEFAULT 0,
		sales_count INTEGER NOT NULL DEFAULT 0,
		deactivated_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(pool_address, wallet)
	);`)
}

func createTokenAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE token_accounts (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		owner TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPoolEventTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE pool_events (
		id TEXT PRIMARY KEY,
		pool_address TEXT NOT NULL,
		event_type TEXT NOT NULL,
		affiliate_wallet TEXT,
		amount INTEGER,
		commission INTEGER,
		created_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createPoolTable(t, db)
	createAffiliateTable(t, db)
	createTokenAccountTable(t, db)
	createPoolEventTable(t, db)
}
