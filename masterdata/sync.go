// Package masterdata runs the master catalog synchronization pipeline and
// the store-code change that resets it.
package masterdata

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"

	"popis/database"
	"popis/executors"
	"popis/model"
	"popis/parsers"
	"popis/prefs"
	"popis/scanerr"
)

// Sync files are named MAT<9-digit store code><anything>.json.
var fileNamePattern = regexp.MustCompile(`^MAT\d{9}.*\.json$`)

const (
	storeCodeStart = 3
	storeCodeEnd   = 12

	timestampFormat = "02.01.2006 - 15:04"
)

// IsValidFileName reports whether a file name matches the sync naming
// contract.
func IsValidFileName(name string) bool {
	return fileNamePattern.MatchString(name)
}

// FileStoreCode extracts the 9-digit store code embedded in a valid sync
// file name.
func FileStoreCode(name string) string {
	if len(name) < storeCodeEnd {
		return ""
	}
	return name[storeCodeStart:storeCodeEnd]
}

type SyncResult struct {
	MasterItems int    `json:"masterItems"`
	DamageCodes int    `json:"damageCodes"`
	SyncDate    string `json:"syncDate"`
}

type Service struct {
	db    *sqlx.DB
	prefs *prefs.Store
	exec  *executors.AppExecutors
}

func NewService(db *sqlx.DB, prefStore *prefs.Store, exec *executors.AppExecutors) *Service {
	return &Service{db: db, prefs: prefStore, exec: exec}
}

// Synchronize validates and applies one master data file. The gates run in
// order (file name, store code, readability, payload shape) and none of them
// touches the catalog; only the final upsert writes, and it writes in a
// single transaction.
func (s *Service) Synchronize(fileName string, content io.Reader, cb func(*SyncResult, *scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		res, serr := s.synchronize(fileName, content)
		s.exec.Main.Dispatch(func() { cb(res, serr) })
	})
}

func (s *Service) synchronize(fileName string, content io.Reader) (*SyncResult, *scanerr.Error) {
	if !IsValidFileName(fileName) {
		return nil, scanerr.Newf(scanerr.CodeInvalidFileName, "Invalid file name",
			"file name %q does not match MAT<store code>*.json", fileName)
	}

	deviceStore := s.prefs.Get().StoreCode
	fileStore := FileStoreCode(fileName)
	if fileStore != deviceStore {
		return nil, scanerr.Newf(scanerr.CodeStoreCodeMismatch, "Wrong store",
			"file is for store %s, this device is configured for store %s", fileStore, deviceStore)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, scanerr.Newf(scanerr.CodeUnreadableFile, "Unreadable file",
			"failed to read %s: %v", fileName, err)
	}

	info, err := parsers.ParseProductsInfo(data)
	if err != nil {
		return nil, scanerr.Newf(scanerr.CodeInvalidPayload, "Invalid file content",
			"%s: %v", fileName, err)
	}
	if len(info.MasterItems) == 0 {
		return nil, scanerr.New(scanerr.CodeEmptyMasterData, "No catalog data",
			"the file contains no master items")
	}
	if len(info.DamageInfo) == 0 {
		return nil, scanerr.New(scanerr.CodeEmptyDamageData, "No damage codes",
			"the file contains no damage codes")
	}

	if serr := s.applySync(info.MasterItems, info.DamageInfo); serr != nil {
		return nil, serr
	}

	syncDate := time.Now().Format(timestampFormat)
	if err := s.prefs.Update(func(p *prefs.Prefs) {
		p.HasMasterData = true
		p.LastMasterDataSyncDate = syncDate
	}); err != nil {
		log.Printf("WARN: master data stored but prefs update failed: %v", err)
	}

	log.Printf("INFO: synchronized %d master items and %d damage codes from %s",
		len(info.MasterItems), len(info.DamageInfo), fileName)
	return &SyncResult{
		MasterItems: len(info.MasterItems),
		DamageCodes: len(info.DamageInfo),
		SyncDate:    syncDate,
	}, nil
}

func (s *Service) applySync(items []model.MasterItem, damage []model.DamageInfo) *scanerr.Error {
	tx, err := s.db.Beginx()
	if err != nil {
		return scanerr.Storage(fmt.Errorf("failed to begin sync transaction: %w", err))
	}
	defer tx.Rollback()

	if err := database.UpsertMasterData(tx, items, damage); err != nil {
		return scanerr.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return scanerr.Storage(fmt.Errorf("failed to commit sync transaction: %w", err))
	}
	return nil
}

// ChangeStoreCode wipes the catalog and moves the device to a new store.
// Refused while ledger rows exist, since exported counts reference catalog
// rows by ident.
func (s *Service) ChangeStoreCode(newCode string, cb func(*scanerr.Error)) {
	s.exec.DiskIO.Execute(func() {
		serr := s.changeStoreCode(newCode)
		s.exec.Main.Dispatch(func() { cb(serr) })
	})
}

func (s *Service) changeStoreCode(newCode string) *scanerr.Error {
	hasItems, err := database.AnyInventoryItemExists(s.db)
	if err != nil {
		return scanerr.Storage(err)
	}
	if hasItems {
		return scanerr.New(scanerr.CodeLedgerNotEmpty, "Inventory data present",
			"export and delete the recorded inventory data before changing the store")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return scanerr.Storage(fmt.Errorf("failed to begin wipe transaction: %w", err))
	}
	defer tx.Rollback()
	if err := database.ClearMasterData(tx); err != nil {
		return scanerr.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return scanerr.Storage(fmt.Errorf("failed to commit wipe transaction: %w", err))
	}

	if err := s.prefs.Update(func(p *prefs.Prefs) {
		p.StoreCode = newCode
		p.HasMasterData = false
		p.LastMasterDataSyncDate = ""
	}); err != nil {
		return scanerr.Storage(fmt.Errorf("failed to persist new store code: %w", err))
	}
	log.Printf("INFO: store code changed to %s, master data cleared", newCode)
	return nil
}
