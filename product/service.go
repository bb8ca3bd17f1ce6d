// Package product exposes catalog lookups: barcode and code resolution,
// reference lists and filtered browsing.
package product

import (
	"github.com/jmoiron/sqlx"

	"popis/barcode"
	"popis/database"
	"popis/executors"
	"popis/filter"
	"popis/model"
	"popis/scanerr"
)

// ScanMatch is the result of resolving a scanned barcode. WeightKg is set
// only when the code was a scale barcode, and carries the quantity to
// prefill.
type ScanMatch struct {
	Item     model.MasterItem `json:"item"`
	WeightKg *float64         `json:"weightKg,omitempty"`
}

type Service struct {
	db   *sqlx.DB
	exec *executors.AppExecutors
}

func NewService(db *sqlx.DB, exec *executors.AppExecutors) *Service {
	return &Service{db: db, exec: exec}
}

// ResolveBarcode finds the catalog item for a scanned code: first by exact
// barcode, then, for scale codes, by the embedded article code.
func (s *Service) ResolveBarcode(code string, cb func(*ScanMatch, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		match, serr := s.resolveBarcode(code)
		s.exec.Main.Dispatch(func() { cb(match, serr) })
	})
}

func (s *Service) resolveBarcode(code string) (*ScanMatch, *scanerr.Error) {
	item, err := database.GetMasterItemByBarcode(s.db, code)
	if err != nil {
		return nil, scanerr.Storage(err)
	}
	if item != nil {
		return &ScanMatch{Item: *item}, nil
	}

	if barcode.IsWeightBarcode(code) {
		weight, werr := barcode.ParseWeight(code)
		if werr != nil {
			return nil, scanerr.Newf(scanerr.CodeMasterNotFound, "Unknown barcode", "%v", werr)
		}
		item, err = database.GetMasterItemByNumericAltCode(s.db, weight.AltCode)
		if err != nil {
			return nil, scanerr.Storage(err)
		}
		if item != nil {
			kg := weight.WeightKg
			return &ScanMatch{Item: *item, WeightKg: &kg}, nil
		}
	}

	return nil, scanerr.Newf(scanerr.CodeMasterNotFound, "Unknown barcode",
		"no catalog item matches barcode %s", code)
}

func (s *Service) GetByIdent(ident string, cb func(*model.MasterItem, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		item, err := database.GetMasterItemByIdent(s.db, ident)
		serr := s.notFoundOrStorage(item, err, "no catalog item with code "+ident)
		s.exec.Main.Dispatch(func() { cb(item, serr) })
	})
}

// GetByAltID resolves an alternative product code, trying the primary
// alternative code first, then the secondary.
func (s *Service) GetByAltID(alt string, cb func(*model.MasterItem, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		item, serr := s.getByAltID(alt)
		s.exec.Main.Dispatch(func() { cb(item, serr) })
	})
}

func (s *Service) getByAltID(alt string) (*model.MasterItem, *scanerr.Error) {
	item, err := database.GetMasterItemByAltCode1(s.db, alt)
	if err != nil {
		return nil, scanerr.Storage(err)
	}
	if item == nil {
		item, err = database.GetMasterItemByAltCode2(s.db, alt)
		if err != nil {
			return nil, scanerr.Storage(err)
		}
	}
	if item == nil {
		return nil, scanerr.Newf(scanerr.CodeMasterNotFound, "Unknown product code",
			"no catalog item with alternative code %s", alt)
	}
	return item, nil
}

func (s *Service) notFoundOrStorage(item *model.MasterItem, err error, msg string) *scanerr.Error {
	if err != nil {
		return scanerr.Storage(err)
	}
	if item == nil {
		return scanerr.New(scanerr.CodeMasterNotFound, "Unknown product", msg)
	}
	return nil
}

// UnitsOfMeasure lists the distinct units present in the catalog. An empty
// catalog reports NO_DATA so the caller can prompt for a sync.
func (s *Service) UnitsOfMeasure(cb func([]string, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		units, err := database.GetUnitsOfMeasure(s.db)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		} else if len(units) == 0 {
			serr = scanerr.New(scanerr.CodeNoData, "No catalog data", "synchronize master data first")
			units = nil
		}
		s.exec.Main.Dispatch(func() { cb(units, serr) })
	})
}

func (s *Service) DamageInfoList(cb func([]model.DamageInfo, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		list, err := database.GetDamageInfoList(s.db)
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
		} else if len(list) == 0 {
			serr = scanerr.New(scanerr.CodeNoData, "No damage codes", "synchronize master data first")
			list = nil
		}
		s.exec.Main.Dispatch(func() { cb(list, serr) })
	})
}

// DamageDescription resolves a damage code to its display description. An
// unknown code yields nil without an error, mirroring how annotations are
// shown: no description is not a failure.
func (s *Service) DamageDescription(code string, cb func(*string, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		desc, found, err := database.GetDamageDescription(s.db, code)
		var (
			result *string
			serr   *scanerr.Error
		)
		if err != nil {
			serr = scanerr.Storage(err)
		} else if found {
			result = &desc
		}
		s.exec.Main.Dispatch(func() { cb(result, serr) })
	})
}

// Search returns one page of the catalog matching the filter.
func (s *Service) Search(q model.QueryMasterItem, page int, cb func([]model.MasterItem, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		items, err := database.GetFilteredMasterItems(s.db, q, filter.PageN(page))
		var serr *scanerr.Error
		if err != nil {
			serr = scanerr.Storage(err)
			items = nil
		}
		s.exec.Main.Dispatch(func() { cb(items, serr) })
	})
}
