// Package export flattens the ledger into the hand-over file collected by
// the ERP.
package export

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"popis/database"
	"popis/executors"
	"popis/model"
	"popis/prefs"
	"popis/scanerr"
)

const (
	fileNamePrefix  = "POP"
	fileDateFormat  = "20060102"
	timestampFormat = "02.01.2006 - 15:04"
)

// FileName builds the export file name for a store on a given day:
// POP<store code>_<yyyyMMdd>.json.
func FileName(storeCode string, at time.Time) string {
	return fmt.Sprintf("%s%s_%s.json", fileNamePrefix, storeCode, at.Format(fileDateFormat))
}

type Result struct {
	Path      string `json:"path"`
	ItemCount int    `json:"itemCount"`
	Date      string `json:"date"`
}

type Service struct {
	db    *sqlx.DB
	prefs *prefs.Store
	exec  *executors.AppExecutors
}

func NewService(db *sqlx.DB, prefStore *prefs.Store, exec *executors.AppExecutors) *Service {
	return &Service{db: db, prefs: prefStore, exec: exec}
}

// Export writes the whole ledger to the export folder. The folder keeps at
// most one file, so a re-export replaces whatever was there. An empty ledger
// fails with NO_DATA and writes nothing.
func (s *Service) Export(cb func(*Result, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		res, serr := s.export()
		s.exec.Main.Dispatch(func() { cb(res, serr) })
	})
}

func (s *Service) export() (*Result, *scanerr.Error) {
	items, err := database.GetExportItems(s.db)
	if err != nil {
		return nil, scanerr.Storage(err)
	}
	if len(items) == 0 {
		return nil, scanerr.New(scanerr.CodeNoData, "No inventory data",
			"there is nothing to export")
	}
	for i := range items {
		items[i].Status = model.StatusFromValue(items[i].RawStatus).String()
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, scanerr.Newf(scanerr.CodeExportFailed, "Export failed",
			"failed to encode export data: %v", err)
	}

	p := s.prefs.Get()
	now := time.Now()
	path := filepath.Join(p.ExportFolderPath, FileName(p.StoreCode, now))

	if serr := s.writeExportFile(p.ExportFolderPath, path, data); serr != nil {
		return nil, serr
	}

	exportDate := now.Format(timestampFormat)
	if err := s.prefs.Update(func(p *prefs.Prefs) {
		p.LastDataExportDate = exportDate
	}); err != nil {
		log.Printf("WARN: export written but prefs update failed: %v", err)
	}

	log.Printf("INFO: exported %d inventory items to %s", len(items), path)
	return &Result{Path: path, ItemCount: len(items), Date: exportDate}, nil
}

// writeExportFile clears older exports before writing, keeping the folder at
// a single file.
func (s *Service) writeExportFile(dir, path string, data []byte) *scanerr.Error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return scanerr.Newf(scanerr.CodeExportFailed, "Export failed",
			"failed to create export folder %s: %v", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return scanerr.Newf(scanerr.CodeExportFailed, "Export failed",
			"failed to read export folder %s: %v", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return scanerr.Newf(scanerr.CodeExportFailed, "Export failed",
				"failed to remove previous export %s: %v", entry.Name(), err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return scanerr.Newf(scanerr.CodeExportFailed, "Export failed",
			"failed to write %s: %v", path, err)
	}
	return nil
}
