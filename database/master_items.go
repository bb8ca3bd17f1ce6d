package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"popis/filter"
	"popis/model"
)

const upsertMasterItemQuery = `
	INSERT INTO master_items (
		ident, store_code, import_date, barcode, alt_code_1, alt_code_2,
		sales_program, purchase_program, unit_of_measure, decimal_places,
		name, max_count_qty, active, accounting, price, quantity_erp
	) VALUES (
		:ident, :store_code, :import_date, :barcode, :alt_code_1, :alt_code_2,
		:sales_program, :purchase_program, :unit_of_measure, :decimal_places,
		:name, :max_count_qty, :active, :accounting, :price, :quantity_erp
	)
	ON CONFLICT(ident) DO UPDATE SET
		store_code = excluded.store_code,
		import_date = excluded.import_date,
		barcode = excluded.barcode,
		alt_code_1 = excluded.alt_code_1,
		alt_code_2 = excluded.alt_code_2,
		sales_program = excluded.sales_program,
		purchase_program = excluded.purchase_program,
		unit_of_measure = excluded.unit_of_measure,
		decimal_places = excluded.decimal_places,
		name = excluded.name,
		max_count_qty = excluded.max_count_qty,
		active = excluded.active,
		accounting = excluded.accounting,
		price = excluded.price,
		quantity_erp = excluded.quantity_erp`

const upsertDamageInfoQuery = `
	INSERT INTO damage_info (code, description)
	VALUES (:code, :description)
	ON CONFLICT(code) DO UPDATE SET description = excluded.description`

// UpsertMasterData writes a full sync payload. Existing rows are overwritten
// field for field, rows absent from the payload are left alone. Damage codes
// go first so item rows never reference a code that is not there yet.
func UpsertMasterData(tx *sqlx.Tx, items []model.MasterItem, damage []model.DamageInfo) error {
	damageStmt, err := tx.PrepareNamed(upsertDamageInfoQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare damage info upsert: %w", err)
	}
	defer damageStmt.Close()
	for _, d := range damage {
		if _, err := damageStmt.Exec(d); err != nil {
			return fmt.Errorf("failed to upsert damage code %s: %w", d.Code, err)
		}
	}

	itemStmt, err := tx.PrepareNamed(upsertMasterItemQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare master item upsert: %w", err)
	}
	defer itemStmt.Close()
	for _, m := range items {
		if _, err := itemStmt.Exec(m); err != nil {
			return fmt.Errorf("failed to upsert master item %s: %w", m.Ident, err)
		}
	}
	return nil
}

// ClearMasterData removes the whole catalog and its damage codes. Callers
// must make sure the ledger is empty first.
func ClearMasterData(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DELETE FROM master_items`); err != nil {
		return fmt.Errorf("failed to clear master items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM damage_info`); err != nil {
		return fmt.Errorf("failed to clear damage info: %w", err)
	}
	return nil
}

func getMasterItem(dbtx DBTX, query string, args ...interface{}) (*model.MasterItem, error) {
	var m model.MasterItem
	err := dbtx.Get(&m, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query master item: %w", err)
	}
	return &m, nil
}

func GetMasterItemByIdent(dbtx DBTX, ident string) (*model.MasterItem, error) {
	return getMasterItem(dbtx, `SELECT * FROM master_items WHERE ident = ?`, ident)
}

func GetMasterItemByBarcode(dbtx DBTX, code string) (*model.MasterItem, error) {
	return getMasterItem(dbtx, `SELECT * FROM master_items WHERE barcode = ?`, code)
}

func GetMasterItemByAltCode1(dbtx DBTX, alt string) (*model.MasterItem, error) {
	return getMasterItem(dbtx, `SELECT * FROM master_items WHERE alt_code_1 = ?`, alt)
}

func GetMasterItemByAltCode2(dbtx DBTX, alt string) (*model.MasterItem, error) {
	return getMasterItem(dbtx, `SELECT * FROM master_items WHERE alt_code_2 = ?`, alt)
}

// GetMasterItemByNumericAltCode matches alt_code_1 numerically. Scale
// barcodes carry the alternative code zero-padded, so a text comparison
// would miss rows stored without the padding.
func GetMasterItemByNumericAltCode(dbtx DBTX, alt int) (*model.MasterItem, error) {
	return getMasterItem(dbtx, `SELECT * FROM master_items WHERE CAST(alt_code_1 AS INTEGER) = ?`, alt)
}

func GetUnitsOfMeasure(dbtx DBTX) ([]string, error) {
	var units []string
	err := dbtx.Select(&units,
		`SELECT DISTINCT unit_of_measure FROM master_items WHERE unit_of_measure != '' ORDER BY unit_of_measure`)
	if err != nil {
		return nil, fmt.Errorf("failed to query units of measure: %w", err)
	}
	return units, nil
}

func GetDamageInfoList(dbtx DBTX) ([]model.DamageInfo, error) {
	var list []model.DamageInfo
	if err := dbtx.Select(&list, `SELECT * FROM damage_info ORDER BY code`); err != nil {
		return nil, fmt.Errorf("failed to query damage info: %w", err)
	}
	return list, nil
}

// GetDamageDescription returns (description, found).
func GetDamageDescription(dbtx DBTX, code string) (string, bool, error) {
	var desc string
	err := dbtx.Get(&desc, `SELECT description FROM damage_info WHERE code = ?`, code)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query damage description: %w", err)
	}
	return desc, true, nil
}

// GetFilteredMasterItems returns one page of the catalog. The no-filter
// sentinel skips predicate building and scans the table directly.
func GetFilteredMasterItems(dbtx DBTX, q model.QueryMasterItem, page filter.Page) ([]model.MasterItem, error) {
	query := `SELECT * FROM master_items`
	var args []interface{}

	if !q.IsNoFilterApplied() {
		where, whereArgs := filter.Conditions(q, "")
		query += where
		args = whereArgs
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)

	items := []model.MasterItem{}
	if err := dbtx.Select(&items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query filtered master items: %w", err)
	}
	return items, nil
}

func CountMasterItems(dbtx DBTX) (int, error) {
	var n int
	if err := dbtx.Get(&n, `SELECT COUNT(*) FROM master_items`); err != nil {
		return 0, fmt.Errorf("failed to count master items: %w", err)
	}
	return n, nil
}
