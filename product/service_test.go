package product

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"popis/database"
	"popis/executors"
	"popis/model"
	"popis/scanerr"
)

func newTestService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.InitSchema(db))
	t.Cleanup(func() { db.Close() })

	exec := executors.NewAppExecutors(executors.SyncDispatcher{})
	t.Cleanup(exec.DiskIO.Shutdown)

	return NewService(db, exec), db
}

func seedCatalog(t *testing.T, db *sqlx.DB, items ...model.MasterItem) {
	t.Helper()
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, database.UpsertMasterData(tx, items,
		[]model.DamageInfo{{Code: "01", Description: "Ogrebotina"}}))
	require.NoError(t, tx.Commit())
}

func resolve(t *testing.T, svc *Service, code string) (*ScanMatch, *scanerr.Error) {
	t.Helper()
	var (
		match *ScanMatch
		serr  *scanerr.Error
		done  = make(chan struct{})
	)
	svc.ResolveBarcode(code, func(m *ScanMatch, e *scanerr.Error) {
		match, serr = m, e
		close(done)
	})
	<-done
	return match, serr
}

func TestResolveBarcodeExactMatch(t *testing.T) {
	svc, db := newTestService(t)
	seedCatalog(t, db, model.MasterItem{
		Ident:   "000111222",
		Barcode: "8600123005009",
		Name:    "EMAJLIRANI LONAC 3L",
	})

	match, serr := resolve(t, svc, "8600123005009")
	require.Nil(t, serr)
	require.Equal(t, "000111222", match.Item.Ident)
	require.Nil(t, match.WeightKg)
}

func TestResolveBarcodeWeightFallback(t *testing.T) {
	svc, db := newTestService(t)
	seedCatalog(t, db, model.MasterItem{
		Ident:    "000111223",
		Barcode:  "8600123005016",
		AltCode1: "00123",
		Name:     "SVEZA RIBA",
	})

	// 28 + alt code 00123 + 01500 grams.
	match, serr := resolve(t, svc, "2800123015008")
	require.Nil(t, serr)
	require.Equal(t, "000111223", match.Item.Ident)
	require.NotNil(t, match.WeightKg)
	require.Equal(t, 1.5, *match.WeightKg)
}

func TestResolveBarcodePrefersExactMatch(t *testing.T) {
	svc, db := newTestService(t)
	seedCatalog(t, db,
		model.MasterItem{Ident: "A", Barcode: "2800123015008", Name: "PAKOVANJE"},
		model.MasterItem{Ident: "B", AltCode1: "00123", Name: "RINFUZ"},
	)

	match, serr := resolve(t, svc, "2800123015008")
	require.Nil(t, serr)
	require.Equal(t, "A", match.Item.Ident)
	require.Nil(t, match.WeightKg)
}

func TestResolveBarcodeNotFound(t *testing.T) {
	svc, db := newTestService(t)
	seedCatalog(t, db, model.MasterItem{Ident: "000111222", Barcode: "8600123005009"})

	_, serr := resolve(t, svc, "0000000000000")
	require.NotNil(t, serr)
	require.Equal(t, scanerr.CodeMasterNotFound, serr.Code)
}

func TestGetByAltIDFallsBackToSecondCode(t *testing.T) {
	svc, db := newTestService(t)
	seedCatalog(t, db,
		model.MasterItem{Ident: "A", AltCode1: "111", AltCode2: "999"},
		model.MasterItem{Ident: "B", AltCode1: "222", AltCode2: "111X"},
	)

	get := func(alt string) (*model.MasterItem, *scanerr.Error) {
		var (
			item *model.MasterItem
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.GetByAltID(alt, func(m *model.MasterItem, e *scanerr.Error) {
			item, serr = m, e
			close(done)
		})
		<-done
		return item, serr
	}

	item, serr := get("111")
	require.Nil(t, serr)
	require.Equal(t, "A", item.Ident)

	item, serr = get("111X")
	require.Nil(t, serr)
	require.Equal(t, "B", item.Ident, "alt_code_2 is the fallback")

	_, serr = get("nope")
	require.NotNil(t, serr)
	require.Equal(t, scanerr.CodeMasterNotFound, serr.Code)
}

func TestUnitsOfMeasureEmptyCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	var (
		serr *scanerr.Error
		done = make(chan struct{})
	)
	svc.UnitsOfMeasure(func(_ []string, e *scanerr.Error) {
		serr = e
		close(done)
	})
	<-done
	require.NotNil(t, serr)
	require.Equal(t, scanerr.CodeNoData, serr.Code)
}

func TestDamageDescription(t *testing.T) {
	svc, db := newTestService(t)
	seedCatalog(t, db, model.MasterItem{Ident: "000111222"})

	get := func(code string) *string {
		var (
			desc *string
			done = make(chan struct{})
		)
		svc.DamageDescription(code, func(d *string, e *scanerr.Error) {
			require.Nil(t, e)
			desc = d
			close(done)
		})
		<-done
		return desc
	}

	desc := get("01")
	require.NotNil(t, desc)
	require.Equal(t, "Ogrebotina", *desc)

	require.Nil(t, get("99"), "unknown codes resolve to nil, not an error")
}

func TestSearchPagesResults(t *testing.T) {
	svc, db := newTestService(t)
	items := make([]model.MasterItem, 0, 35)
	for i := 0; i < 35; i++ {
		items = append(items, model.MasterItem{
			Ident:      string(rune('A'+i/26)) + string(rune('A'+i%26)),
			Name:       "ARTIKAL",
			Active:     1,
			Accounting: 1,
		})
	}
	seedCatalog(t, db, items...)

	search := func(page int) []model.MasterItem {
		var (
			got  []model.MasterItem
			done = make(chan struct{})
		)
		svc.Search(model.NoFilterQuery(), page, func(m []model.MasterItem, e *scanerr.Error) {
			require.Nil(t, e)
			got = m
			close(done)
		})
		<-done
		return got
	}

	require.Len(t, search(0), 30)
	require.Len(t, search(1), 5)
	require.Empty(t, search(2))
}
