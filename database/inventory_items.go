package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"popis/filter"
	"popis/model"
)

const previewSelect = `
	SELECT
		m.name AS product_name,
		m.price AS product_price,
		m.unit_of_measure AS measure_unit,
		i.id AS inventory_id,
		i.ident AS ident,
		m.barcode AS barcode,
		i.quantity AS quantity,
		i.status AS status,
		i.index_in_list AS index_in_list,
		CASE
			WHEN i.exp_date IS NOT NULL AND i.exp_date != '' THEN 1
			WHEN i.note IS NOT NULL AND i.note != '' THEN 1
			WHEN i.damage_code IS NOT NULL AND i.damage_code != '' THEN 1
			ELSE 0
		END AS has_extra_info
	FROM inventory_items i
	JOIN master_items m ON m.ident = i.ident`

// Non-voided rows first, newest scan first within each group.
const previewOrder = ` ORDER BY CASE WHEN i.status = 2 THEN 0 ELSE 1 END ASC, i.index_in_list DESC`

// MaxIndexInList returns the highest index_in_list used in the list, 0 when
// the list has no rows.
func MaxIndexInList(dbtx DBTX, listID int64) (int, error) {
	var max int
	err := dbtx.Get(&max,
		`SELECT COALESCE(MAX(index_in_list), 0) FROM inventory_items WHERE inventory_list_id = ?`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to query max index for list %d: %w", listID, err)
	}
	return max, nil
}

// InsertInventoryItem appends a ledger row. The per-list index is allocated
// inside the caller's transaction so two appends can never share one, and
// the row always starts NON_VOIDED. The item's ID, IndexInList and Status
// are filled in on return.
func InsertInventoryItem(tx *sqlx.Tx, item *model.InventoryItem) error {
	max, err := MaxIndexInList(tx, item.InventoryListID)
	if err != nil {
		return err
	}
	item.IndexInList = max + 1
	item.Status = int(model.StatusNonVoided)

	res, err := tx.NamedExec(`
		INSERT INTO inventory_items (
			device_number, store_code, inventory_list_id, ident, quantity,
			exp_date, damage_code, note, status, index_in_list
		) VALUES (
			:device_number, :store_code, :inventory_list_id, :ident, :quantity,
			:exp_date, :damage_code, :note, :status, :index_in_list
		)`, item)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item for %s: %w", item.Ident, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted inventory item id: %w", err)
	}
	item.ID = id
	return nil
}

// ErrAlreadyVoided is reported by VoidInventoryItem when the target row is
// not in the NON_VOIDED state.
var ErrAlreadyVoided = fmt.Errorf("inventory item is not voidable")

// VoidInventoryItem flips the row to VOIDED and appends a negated VOID clone
// at the next free index of the same list. Both writes belong to the
// caller's transaction. The guard on status makes a second void a no-op
// reported as ErrAlreadyVoided.
func VoidInventoryItem(tx *sqlx.Tx, id int64) error {
	res, err := tx.Exec(
		`UPDATE inventory_items SET status = ? WHERE id = ? AND status = ?`,
		model.StatusVoided, id, model.StatusNonVoided)
	if err != nil {
		return fmt.Errorf("failed to mark inventory item %d voided: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read void update result: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyVoided
	}

	var listID int64
	if err := tx.Get(&listID, `SELECT inventory_list_id FROM inventory_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to read list of inventory item %d: %w", id, err)
	}
	max, err := MaxIndexInList(tx, listID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO inventory_items (
			device_number, store_code, inventory_list_id, ident, quantity,
			exp_date, damage_code, note, status, index_in_list
		)
		SELECT device_number, store_code, inventory_list_id, ident, -quantity,
			exp_date, damage_code, note, ?, ?
		FROM inventory_items WHERE id = ?`,
		model.StatusVoid, max+1, id)
	if err != nil {
		return fmt.Errorf("failed to insert negated clone of inventory item %d: %w", id, err)
	}
	return nil
}

func GetInventoryItemByID(dbtx DBTX, id int64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := dbtx.Get(&item, `SELECT * FROM inventory_items WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory item %d: %w", id, err)
	}
	return &item, nil
}

// GetInventoryItemDetail loads a ledger row together with its damage code
// description for the edit screen.
func GetInventoryItemDetail(dbtx DBTX, id int64) (*model.InventoryItemDetail, error) {
	var item model.InventoryItemDetail
	err := dbtx.Get(&item, `
		SELECT i.*, d.description AS damage_desc
		FROM inventory_items i
		LEFT JOIN damage_info d ON d.code = i.damage_code
		WHERE i.id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory item detail %d: %w", id, err)
	}
	return &item, nil
}

// UpdateInventoryItem overwrites the full row and reports how many rows
// matched.
func UpdateInventoryItem(dbtx DBTX, item model.InventoryItem) (int64, error) {
	res, err := dbtx.NamedExec(`
		UPDATE inventory_items SET
			device_number = :device_number,
			store_code = :store_code,
			inventory_list_id = :inventory_list_id,
			ident = :ident,
			quantity = :quantity,
			exp_date = :exp_date,
			damage_code = :damage_code,
			note = :note,
			status = :status,
			index_in_list = :index_in_list
		WHERE id = :id`, item)
	if err != nil {
		return 0, fmt.Errorf("failed to update inventory item %d: %w", item.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	return rows, nil
}

// GetPreviewByInventoryID returns the denormalized view of one ledger row,
// nil when either the row or its catalog item is missing.
func GetPreviewByInventoryID(dbtx DBTX, id int64) (*model.ProductPreviewItem, error) {
	var p model.ProductPreviewItem
	err := dbtx.Get(&p, previewSelect+` WHERE i.id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preview for inventory item %d: %w", id, err)
	}
	return &p, nil
}

// GetRecentPreviews returns the top rows of the scanning screen for one
// list.
func GetRecentPreviews(dbtx DBTX, listID int64, limit int) ([]model.ProductPreviewItem, error) {
	items := []model.ProductPreviewItem{}
	err := dbtx.Select(&items,
		previewSelect+` WHERE i.inventory_list_id = ?`+previewOrder+` LIMIT ?`,
		listID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent previews for list %d: %w", listID, err)
	}
	return items, nil
}

// GetFilteredPreviews returns one page of the denormalized ledger for a
// list, filtered on the joined catalog columns.
func GetFilteredPreviews(dbtx DBTX, listID int64, q model.QueryMasterItem, page filter.Page) ([]model.ProductPreviewItem, error) {
	query := previewSelect
	args := []interface{}{}

	where, whereArgs := "", []interface{}(nil)
	if !q.IsNoFilterApplied() {
		where, whereArgs = filter.Conditions(q, "m.")
	}
	if where == "" {
		query += ` WHERE i.inventory_list_id = ?`
	} else {
		query += where + ` AND i.inventory_list_id = ?`
		args = whereArgs
	}
	args = append(args, listID)
	query += previewOrder + ` LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)

	items := []model.ProductPreviewItem{}
	if err := dbtx.Select(&items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query filtered previews for list %d: %w", listID, err)
	}
	return items, nil
}

// GetExportItems flattens the whole ledger for the export file. Lists and
// damage descriptions are left-joined so orphaned references still export.
func GetExportItems(dbtx DBTX) ([]model.InventoryExportItem, error) {
	items := []model.InventoryExportItem{}
	err := dbtx.Select(&items, `
		SELECT
			i.device_number, i.store_code, i.inventory_list_id,
			l.name AS list_name,
			i.ident, i.quantity, i.exp_date, i.damage_code,
			d.description AS damage_desc,
			i.note, i.status, i.index_in_list
		FROM inventory_items i
		LEFT JOIN inventory_lists l ON l.id = i.inventory_list_id
		LEFT JOIN damage_info d ON d.code = i.damage_code
		ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query export items: %w", err)
	}
	return items, nil
}

// DeleteAllInventoryItems wipes the ledger and resets its id sequence so a
// fresh count starts from id 1 again.
func DeleteAllInventoryItems(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DELETE FROM inventory_items`); err != nil {
		return fmt.Errorf("failed to delete inventory items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name = 'inventory_items'`); err != nil {
		return fmt.Errorf("failed to reset inventory item sequence: %w", err)
	}
	return nil
}

func AnyInventoryItemExists(dbtx DBTX) (bool, error) {
	var n int
	if err := dbtx.Get(&n, `SELECT COUNT(*) FROM (SELECT 1 FROM inventory_items LIMIT 1)`); err != nil {
		return false, fmt.Errorf("failed to probe inventory items: %w", err)
	}
	return n > 0, nil
}
