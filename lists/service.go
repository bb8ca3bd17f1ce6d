// Package lists manages the registry of counting lists and the single
// selected list.
package lists

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"popis/database"
	"popis/executors"
	"popis/model"
	"popis/scanerr"
)

type Service struct {
	db   *sqlx.DB
	exec *executors.AppExecutors
}

func NewService(db *sqlx.DB, exec *executors.AppExecutors) *Service {
	return &Service{db: db, exec: exec}
}

// normalizeName upper-cases a list name with Serbian casing rules, so names
// typed in Latin script with diacritics display consistently.
func normalizeName(name string) string {
	return cases.Upper(language.Serbian).String(strings.TrimSpace(name))
}

// Create registers a new list. Names are stored upper-cased and the new list
// is not selected.
func (s *Service) Create(name string, cb func(*model.InventoryList, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		list, serr := s.create(name)
		s.exec.Main.Dispatch(func() { cb(list, serr) })
	})
}

func (s *Service) create(name string) (*model.InventoryList, *scanerr.Error) {
	id, err := database.InsertInventoryList(s.db, normalizeName(name))
	if err != nil {
		return nil, scanerr.Storage(err)
	}
	list, err := database.GetInventoryListByID(s.db, id)
	if err != nil {
		return nil, scanerr.Storage(err)
	}
	if list == nil {
		return nil, scanerr.Storage(fmt.Errorf("inserted list %d not found", id))
	}
	return list, nil
}

// All returns every list with its recorded row count. An empty registry
// reports NO_DATA.
func (s *Service) All(cb func([]model.InventoryListWithCount, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		lists, err := database.GetInventoryListsWithCounts(s.db)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		} else if len(lists) == 0 {
			serr = scanerr.New(scanerr.CodeNoData, "No lists", "create a counting list first")
			lists = nil
		}
		s.exec.Main.Dispatch(func() { cb(lists, serr) })
	})
}

// Current returns the selected list.
func (s *Service) Current(cb func(*model.InventoryList, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		list, err := database.GetSelectedInventoryList(s.db)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		} else if list == nil {
			serr = scanerr.New(scanerr.CodeListNotFound, "No list selected",
				"select a counting list first")
		}
		s.exec.Main.Dispatch(func() { cb(list, serr) })
	})
}

// Select makes the given list the selected one, atomically replacing the
// previous selection.
func (s *Service) Select(id int64, cb func(*scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		serr := s.selectList(id)
		s.exec.Main.Dispatch(func() { cb(serr) })
	})
}

func (s *Service) selectList(id int64) *scanerr.Error {
	tx, err := s.db.Beginx()
	if err != nil {
		return scanerr.Storage(fmt.Errorf("failed to begin selection transaction: %w", err))
	}
	defer tx.Rollback()

	found, err := database.SelectInventoryList(tx, id)
	if err != nil {
		return scanerr.Storage(err)
	}
	if !found {
		return scanerr.Newf(scanerr.CodeListNotFound, "List not found",
			"no inventory list with id %d", id)
	}
	if err := tx.Commit(); err != nil {
		return scanerr.Storage(fmt.Errorf("failed to commit selection transaction: %w", err))
	}
	return nil
}

func (s *Service) Exists(cb func(bool, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		exists, err := database.AnyInventoryListExists(s.db)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		}
		s.exec.Main.Dispatch(func() { cb(exists, serr) })
	})
}
