package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"popis/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// One connection, or each pooled connection would see its own empty
	// in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, InitSchema(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func testMasterItem(ident string) model.MasterItem {
	return model.MasterItem{
		Ident:         ident,
		StoreCode:     "000123456",
		Barcode:       "86" + ident,
		AltCode1:      "1" + ident,
		AltCode2:      "2" + ident,
		SalesProgram:  "01",
		UnitOfMeasure: "KOM",
		Name:          "ARTIKAL " + ident,
		Active:        1,
		Accounting:    1,
		Price:         100,
	}
}

func seedMasterItems(t *testing.T, db *sqlx.DB, items ...model.MasterItem) {
	t.Helper()
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, UpsertMasterData(tx, items, []model.DamageInfo{
		{Code: "01", Description: "Ogrebotina"},
		{Code: "02", Description: "Ulubljenje"},
	}))
	require.NoError(t, tx.Commit())
}

func seedList(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()
	id, err := InsertInventoryList(db, name)
	require.NoError(t, err)
	return id
}

func appendItem(t *testing.T, db *sqlx.DB, listID int64, ident string, qty float64) model.InventoryItem {
	t.Helper()
	item := model.InventoryItem{
		DeviceNumber:    "PDA-1",
		StoreCode:       "000123456",
		InventoryListID: listID,
		Ident:           ident,
		Quantity:        qty,
	}
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, InsertInventoryItem(tx, &item))
	require.NoError(t, tx.Commit())
	return item
}
