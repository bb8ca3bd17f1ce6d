// Package inventory owns the append-only count ledger: recording scans,
// voiding, editing, browsing and the full wipe.
package inventory

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"popis/database"
	"popis/executors"
	"popis/filter"
	"popis/model"
	"popis/prefs"
	"popis/scanerr"
)

// RecentLimit is how many rows the scanning screen shows.
const RecentLimit = 5

type Service struct {
	db    *sqlx.DB
	prefs *prefs.Store
	exec  *executors.AppExecutors
}

func NewService(db *sqlx.DB, prefStore *prefs.Store, exec *executors.AppExecutors) *Service {
	return &Service{db: db, prefs: prefStore, exec: exec}
}

// AddRequest is one scan to record. The device and store identity are taken
// from the preference store, not from the caller.
type AddRequest struct {
	InventoryListID int64   `json:"inventoryListId"`
	Ident           string  `json:"ident"`
	Quantity        float64 `json:"quantity"`
	ExpDate         *string `json:"expDate"`
	DamageCode      *string `json:"damageCode"`
	Note            *string `json:"note"`
}

// Add appends a ledger row and returns its denormalized preview.
func (s *Service) Add(req AddRequest, cb func(*model.ProductPreviewItem, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		preview, serr := s.add(req)
		s.exec.Main.Dispatch(func() { cb(preview, serr) })
	})
}

func (s *Service) add(req AddRequest) (*model.ProductPreviewItem, *scanerr.Error) {
	p := s.prefs.Get()
	item := model.InventoryItem{
		DeviceNumber:    p.DeviceName,
		StoreCode:       p.StoreCode,
		InventoryListID: req.InventoryListID,
		Ident:           req.Ident,
		Quantity:        req.Quantity,
		ExpDate:         req.ExpDate,
		DamageCode:      req.DamageCode,
		Note:            req.Note,
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, scanerr.Storage(fmt.Errorf("failed to begin add transaction: %w", err))
	}
	defer tx.Rollback()

	if err := database.InsertInventoryItem(tx, &item); err != nil {
		return nil, scanerr.Storage(err)
	}
	preview, err := database.GetPreviewByInventoryID(tx, item.ID)
	if err != nil {
		return nil, scanerr.Storage(err)
	}
	if preview == nil {
		return nil, scanerr.Newf(scanerr.CodeMasterNotFound, "Unknown product",
			"no catalog item with code %s", req.Ident)
	}
	if err := tx.Commit(); err != nil {
		return nil, scanerr.Storage(fmt.Errorf("failed to commit add transaction: %w", err))
	}
	return preview, nil
}

// Void cancels a recorded scan: the row flips to VOIDED and a negated VOID
// clone is appended, both in one transaction. Voiding anything but a
// NON_VOIDED row fails.
func (s *Service) Void(id int64, cb func(*scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		serr := s.void(id)
		s.exec.Main.Dispatch(func() { cb(serr) })
	})
}

func (s *Service) void(id int64) *scanerr.Error {
	tx, err := s.db.Beginx()
	if err != nil {
		return scanerr.Storage(fmt.Errorf("failed to begin void transaction: %w", err))
	}
	defer tx.Rollback()

	item, err := database.GetInventoryItemByID(tx, id)
	if err != nil {
		return scanerr.Storage(err)
	}
	if item == nil {
		return scanerr.Newf(scanerr.CodeItemNotFound, "Item not found",
			"no inventory item with id %d", id)
	}

	if err := database.VoidInventoryItem(tx, id); err != nil {
		if err == database.ErrAlreadyVoided {
			return scanerr.Newf(scanerr.CodeAlreadyVoided, "Already voided",
				"inventory item %d has already been voided", id)
		}
		return scanerr.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return scanerr.Storage(fmt.Errorf("failed to commit void transaction: %w", err))
	}
	return nil
}

// Update overwrites an existing ledger row.
func (s *Service) Update(item model.InventoryItem, cb func(*scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		var serr *scanerr.Error
		rows, err := database.UpdateInventoryItem(s.db, item)
		if err != nil {
			serr = scanerr.Storage(err)
		} else if rows == 0 {
			serr = scanerr.Newf(scanerr.CodeItemNotFound, "Item not found",
				"no inventory item with id %d", item.ID)
		}
		s.exec.Main.Dispatch(func() { cb(serr) })
	})
}

func (s *Service) GetByID(id int64, cb func(*model.InventoryItemDetail, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		item, err := database.GetInventoryItemDetail(s.db, id)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		} else if item == nil {
			serr = scanerr.Newf(scanerr.CodeItemNotFound, "Item not found",
				"no inventory item with id %d", id)
		}
		s.exec.Main.Dispatch(func() { cb(item, serr) })
	})
}

// Recent returns the newest rows of one list for the scanning screen,
// non-voided first. An empty list reports NO_DATA.
func (s *Service) Recent(listID int64, cb func([]model.ProductPreviewItem, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		items, err := database.GetRecentPreviews(s.db, listID, RecentLimit)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		} else if len(items) == 0 {
			serr = scanerr.New(scanerr.CodeNoData, "No recorded items",
				"nothing has been recorded on this list yet")
			items = nil
		}
		s.exec.Main.Dispatch(func() { cb(items, serr) })
	})
}

// Search returns one page of the list's denormalized rows matching the
// filter.
func (s *Service) Search(listID int64, q model.QueryMasterItem, page int, cb func([]model.ProductPreviewItem, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		items, err := database.GetFilteredPreviews(s.db, listID, q, filter.PageN(page))
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
			items = nil
		}
		s.exec.Main.Dispatch(func() { cb(items, serr) })
	})
}

// DeleteAll wipes the ledger and the list registry together and resets both
// id sequences, so the next count starts clean.
func (s *Service) DeleteAll(cb func(*scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		serr := s.deleteAll()
		s.exec.Main.Dispatch(func() { cb(serr) })
	})
}

func (s *Service) deleteAll() *scanerr.Error {
	tx, err := s.db.Beginx()
	if err != nil {
		return scanerr.Storage(fmt.Errorf("failed to begin delete transaction: %w", err))
	}
	defer tx.Rollback()

	if err := database.DeleteAllInventoryItems(tx); err != nil {
		return scanerr.Storage(err)
	}
	if err := database.DeleteAllInventoryLists(tx); err != nil {
		return scanerr.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return scanerr.Storage(fmt.Errorf("failed to commit delete transaction: %w", err))
	}
	log.Printf("INFO: inventory data deleted")
	return nil
}

func (s *Service) Exists(cb func(bool, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		exists, err := database.AnyInventoryItemExists(s.db)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		}
		s.exec.Main.Dispatch(func() { cb(exists, serr) })
	})
}
