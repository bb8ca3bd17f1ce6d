package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAndGetInventoryList(t *testing.T) {
	db := newTestDB(t)
	id := seedList(t, db, "MAGACIN")

	list, err := GetInventoryListByID(db, id)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Equal(t, "MAGACIN", list.Name)
	require.Zero(t, list.Selected, "new lists are not selected")

	missing, err := GetInventoryListByID(db, 999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSelectInventoryListSwapsSelection(t *testing.T) {
	db := newTestDB(t)
	a := seedList(t, db, "MAGACIN")
	b := seedList(t, db, "RAMPA")

	tx, err := db.Beginx()
	require.NoError(t, err)
	found, err := SelectInventoryList(tx, a)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, tx.Commit())

	selected, err := GetSelectedInventoryList(db)
	require.NoError(t, err)
	require.Equal(t, a, selected.ID)

	tx, err = db.Beginx()
	require.NoError(t, err)
	found, err = SelectInventoryList(tx, b)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, tx.Commit())

	selected, err = GetSelectedInventoryList(db)
	require.NoError(t, err)
	require.Equal(t, b, selected.ID)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM inventory_lists WHERE selected = 1`))
	require.Equal(t, 1, count, "exactly one list stays selected")
}

func TestSelectInventoryListUnknownID(t *testing.T) {
	db := newTestDB(t)
	a := seedList(t, db, "MAGACIN")

	tx, err := db.Beginx()
	require.NoError(t, err)
	found, err := SelectInventoryList(tx, a)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, tx.Commit())

	// A failed selection rolls back, keeping the previous one.
	tx, err = db.Beginx()
	require.NoError(t, err)
	found, err = SelectInventoryList(tx, 999)
	require.NoError(t, err)
	require.False(t, found)
	tx.Rollback()

	selected, err := GetSelectedInventoryList(db)
	require.NoError(t, err)
	require.NotNil(t, selected)
	require.Equal(t, a, selected.ID)
}

func TestGetInventoryListsWithCounts(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	a := seedList(t, db, "MAGACIN")
	seedList(t, db, "RAMPA")

	appendItem(t, db, a, "000000001", 1)
	appendItem(t, db, a, "000000001", 2)

	lists, err := GetInventoryListsWithCounts(db)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	require.Equal(t, "MAGACIN", lists[0].Name)
	require.Equal(t, 2, lists[0].ItemCount)
	require.Equal(t, "RAMPA", lists[1].Name)
	require.Zero(t, lists[1].ItemCount)
}

func TestDeleteAllInventoryListsResetsSequence(t *testing.T) {
	db := newTestDB(t)
	seedList(t, db, "MAGACIN")
	seedList(t, db, "RAMPA")

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, DeleteAllInventoryLists(tx))
	require.NoError(t, tx.Commit())

	exists, err := AnyInventoryListExists(db)
	require.NoError(t, err)
	require.False(t, exists)

	id := seedList(t, db, "NOVI")
	require.Equal(t, int64(1), id)
}
