package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"popis/filter"
	"popis/model"
)

func TestInsertInventoryItemAllocatesIndexes(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listA := seedList(t, db, "MAGACIN")
	listB := seedList(t, db, "RAMPA")

	a1 := appendItem(t, db, listA, "000000001", 2)
	a2 := appendItem(t, db, listA, "000000001", 3)
	b1 := appendItem(t, db, listB, "000000001", 1)

	require.Equal(t, 1, a1.IndexInList)
	require.Equal(t, 2, a2.IndexInList)
	require.Equal(t, 1, b1.IndexInList, "indexes are per list")
	require.Equal(t, int(model.StatusNonVoided), a1.Status)
	require.NotZero(t, a1.ID)
}

func TestVoidInventoryItem(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")
	item := appendItem(t, db, listID, "000000001", 4)

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, VoidInventoryItem(tx, item.ID))
	require.NoError(t, tx.Commit())

	// Original flips to VOIDED, quantity untouched.
	original, err := GetInventoryItemByID(db, item.ID)
	require.NoError(t, err)
	require.Equal(t, int(model.StatusVoided), original.Status)
	require.Equal(t, 4.0, original.Quantity)
	require.Equal(t, 1, original.IndexInList)

	// Clone carries the negated quantity, VOID status and the next index.
	var clone model.InventoryItem
	require.NoError(t, db.Get(&clone,
		`SELECT * FROM inventory_items WHERE id != ? ORDER BY id DESC LIMIT 1`, item.ID))
	require.Equal(t, int(model.StatusVoid), clone.Status)
	require.Equal(t, -4.0, clone.Quantity)
	require.Equal(t, 2, clone.IndexInList)
	require.Equal(t, item.Ident, clone.Ident)
	require.Equal(t, item.InventoryListID, clone.InventoryListID)

	// Net quantity for the article is back to zero.
	var net float64
	require.NoError(t, db.Get(&net, `SELECT SUM(quantity) FROM inventory_items WHERE ident = ?`, item.Ident))
	require.Zero(t, net)
}

func TestVoidInventoryItemTwiceFails(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")
	item := appendItem(t, db, listID, "000000001", 4)

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, VoidInventoryItem(tx, item.ID))
	require.NoError(t, tx.Commit())

	tx, err = db.Beginx()
	require.NoError(t, err)
	err = VoidInventoryItem(tx, item.ID)
	require.ErrorIs(t, err, ErrAlreadyVoided)
	tx.Rollback()

	// Exactly one clone exists.
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM inventory_items`))
	require.Equal(t, 2, n)
}

func TestVoidClonePreservesAnnotations(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")

	exp := "15.07.2027"
	damage := "01"
	note := "polomljena drska"
	item := model.InventoryItem{
		DeviceNumber:    "PDA-1",
		StoreCode:       "000123456",
		InventoryListID: listID,
		Ident:           "000000001",
		Quantity:        2,
		ExpDate:         &exp,
		DamageCode:      &damage,
		Note:            &note,
	}
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, InsertInventoryItem(tx, &item))
	require.NoError(t, VoidInventoryItem(tx, item.ID))
	require.NoError(t, tx.Commit())

	var clone model.InventoryItem
	require.NoError(t, db.Get(&clone,
		`SELECT * FROM inventory_items WHERE id != ?`, item.ID))
	require.Equal(t, &exp, clone.ExpDate)
	require.Equal(t, &damage, clone.DamageCode)
	require.Equal(t, &note, clone.Note)
}

func TestUpdateInventoryItem(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")
	item := appendItem(t, db, listID, "000000001", 4)

	item.Quantity = 7
	note := "ispravka"
	item.Note = &note
	rows, err := UpdateInventoryItem(db, item)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	got, err := GetInventoryItemByID(db, item.ID)
	require.NoError(t, err)
	require.Equal(t, 7.0, got.Quantity)
	require.Equal(t, &note, got.Note)

	missing := item
	missing.ID = 9999
	rows, err = UpdateInventoryItem(db, missing)
	require.NoError(t, err)
	require.Zero(t, rows)
}

func TestGetInventoryItemDetail(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")

	damage := "01"
	item := model.InventoryItem{
		InventoryListID: listID,
		Ident:           "000000001",
		Quantity:        1,
		DamageCode:      &damage,
	}
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, InsertInventoryItem(tx, &item))
	require.NoError(t, tx.Commit())

	detail, err := GetInventoryItemDetail(db, item.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.NotNil(t, detail.DamageDesc)
	require.Equal(t, "Ogrebotina", *detail.DamageDesc)

	plain := appendItem(t, db, listID, "000000001", 1)
	detail, err = GetInventoryItemDetail(db, plain.ID)
	require.NoError(t, err)
	require.Nil(t, detail.DamageDesc)
}

func TestPreviewOrderingAndExtraInfo(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")

	first := appendItem(t, db, listID, "000000001", 1)
	second := appendItem(t, db, listID, "000000001", 2)
	third := appendItem(t, db, listID, "000000001", 3)

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, VoidInventoryItem(tx, second.ID))
	require.NoError(t, tx.Commit())

	previews, err := GetRecentPreviews(db, listID, 10)
	require.NoError(t, err)
	require.Len(t, previews, 4)

	// Non-voided first, newest index first; the voided original and its
	// clone trail behind in index order.
	require.Equal(t, third.ID, previews[0].InventoryID)
	require.Equal(t, first.ID, previews[1].InventoryID)
	require.Equal(t, int(model.StatusVoid), previews[2].Status)
	require.Equal(t, second.ID, previews[3].InventoryID)

	for _, p := range previews {
		require.False(t, p.HasExtraInfo)
		require.Equal(t, "ARTIKAL 000000001", p.ProductName)
	}
}

func TestPreviewHasExtraInfo(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")

	note := "okrnjeno"
	item := model.InventoryItem{
		InventoryListID: listID,
		Ident:           "000000001",
		Quantity:        1,
		Note:            &note,
	}
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, InsertInventoryItem(tx, &item))
	require.NoError(t, tx.Commit())

	preview, err := GetPreviewByInventoryID(db, item.ID)
	require.NoError(t, err)
	require.NotNil(t, preview)
	require.True(t, preview.HasExtraInfo)
}

func TestGetFilteredPreviewsScopedToList(t *testing.T) {
	db := newTestDB(t)
	a := testMasterItem("000000001")
	a.Name = "LONAC"
	b := testMasterItem("000000002")
	b.Name = "TIGANJ"
	seedMasterItems(t, db, a, b)

	listA := seedList(t, db, "MAGACIN")
	listB := seedList(t, db, "RAMPA")
	appendItem(t, db, listA, "000000001", 1)
	appendItem(t, db, listA, "000000002", 1)
	appendItem(t, db, listB, "000000001", 1)

	all, err := GetFilteredPreviews(db, listA, model.NoFilterQuery(), filter.PageN(0))
	require.NoError(t, err)
	require.Len(t, all, 2)

	q := model.NoFilterQuery()
	q.FilterText = "LONAC"
	filtered, err := GetFilteredPreviews(db, listA, q, filter.PageN(0))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "000000001", filtered[0].Ident)
}

func TestGetExportItems(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")

	damage := "02"
	item := model.InventoryItem{
		DeviceNumber:    "PDA-1",
		StoreCode:       "000123456",
		InventoryListID: listID,
		Ident:           "000000001",
		Quantity:        5,
		DamageCode:      &damage,
	}
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, InsertInventoryItem(tx, &item))
	require.NoError(t, tx.Commit())

	items, err := GetExportItems(db)
	require.NoError(t, err)
	require.Len(t, items, 1)

	e := items[0]
	require.Equal(t, "PDA-1", e.DeviceNumber)
	require.Equal(t, "000123456", e.StoreCode)
	require.NotNil(t, e.ListName)
	require.Equal(t, "MAGACIN", *e.ListName)
	require.NotNil(t, e.DamageDesc)
	require.Equal(t, "Ulubljenje", *e.DamageDesc)
	require.Equal(t, int(model.StatusNonVoided), e.RawStatus)
	require.Equal(t, 1, e.IndexInList)
}

func TestDeleteAllInventoryItemsResetsSequence(t *testing.T) {
	db := newTestDB(t)
	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")
	appendItem(t, db, listID, "000000001", 1)
	appendItem(t, db, listID, "000000001", 2)

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, DeleteAllInventoryItems(tx))
	require.NoError(t, tx.Commit())

	exists, err := AnyInventoryItemExists(db)
	require.NoError(t, err)
	require.False(t, exists)

	// Ids restart from 1 after the wipe.
	fresh := appendItem(t, db, listID, "000000001", 1)
	require.Equal(t, int64(1), fresh.ID)
}

func TestAnyInventoryItemExists(t *testing.T) {
	db := newTestDB(t)
	exists, err := AnyInventoryItemExists(db)
	require.NoError(t, err)
	require.False(t, exists)

	seedMasterItems(t, db, testMasterItem("000000001"))
	listID := seedList(t, db, "MAGACIN")
	appendItem(t, db, listID, "000000001", 1)

	exists, err = AnyInventoryItemExists(db)
	require.NoError(t, err)
	require.True(t, exists)
}
