package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"popis/model"
)

func InsertInventoryList(dbtx DBTX, name string) (int64, error) {
	res, err := dbtx.Exec(`INSERT INTO inventory_lists (name, selected) VALUES (?, 0)`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert inventory list %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted list id: %w", err)
	}
	return id, nil
}

func GetInventoryListByID(dbtx DBTX, id int64) (*model.InventoryList, error) {
	var l model.InventoryList
	err := dbtx.Get(&l, `SELECT * FROM inventory_lists WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory list %d: %w", id, err)
	}
	return &l, nil
}

// GetSelectedInventoryList returns the currently selected list, nil when no
// list is selected.
func GetSelectedInventoryList(dbtx DBTX) (*model.InventoryList, error) {
	var l model.InventoryList
	err := dbtx.Get(&l, `SELECT * FROM inventory_lists WHERE selected = 1 LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query selected inventory list: %w", err)
	}
	return &l, nil
}

func GetInventoryListsWithCounts(dbtx DBTX) ([]model.InventoryListWithCount, error) {
	lists := []model.InventoryListWithCount{}
	err := dbtx.Select(&lists, `
		SELECT l.id, l.name, l.selected, COUNT(i.id) AS item_count
		FROM inventory_lists l
		LEFT JOIN inventory_items i ON i.inventory_list_id = l.id
		GROUP BY l.id, l.name, l.selected
		ORDER BY l.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory lists: %w", err)
	}
	return lists, nil
}

// SelectInventoryList moves the selection to the given list. Clearing the
// old selection and setting the new one happen in the caller's transaction
// so there is no visible moment with zero or two selected lists. Returns
// false when the list does not exist.
func SelectInventoryList(tx *sqlx.Tx, id int64) (bool, error) {
	if _, err := tx.Exec(`UPDATE inventory_lists SET selected = 0 WHERE selected = 1`); err != nil {
		return false, fmt.Errorf("failed to clear list selection: %w", err)
	}
	res, err := tx.Exec(`UPDATE inventory_lists SET selected = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to select inventory list %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read selection result: %w", err)
	}
	return rows > 0, nil
}

// DeleteAllInventoryLists wipes the registry and resets its id sequence.
// Always paired with DeleteAllInventoryItems in the same transaction.
func DeleteAllInventoryLists(tx *sqlx.Tx) error {
	if _, err := tx.Exec(`DELETE FROM inventory_lists`); err != nil {
		return fmt.Errorf("failed to delete inventory lists: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name = 'inventory_lists'`); err != nil {
		return fmt.Errorf("failed to reset inventory list sequence: %w", err)
	}
	return nil
}

func AnyInventoryListExists(dbtx DBTX) (bool, error) {
	var n int
	if err := dbtx.Get(&n, `SELECT COUNT(*) FROM (SELECT 1 FROM inventory_lists LIMIT 1)`); err != nil {
		return false, fmt.Errorf("failed to probe inventory lists: %w", err)
	}
	return n > 0, nil
}
