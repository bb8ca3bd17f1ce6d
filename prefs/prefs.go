// Package prefs persists device preferences as a small JSON file.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type Prefs struct {
	DeviceName             string `json:"deviceName"`
	StoreCode              string `json:"storeCode"`
	HasMasterData          bool   `json:"hasMasterData"`
	LastMasterDataSyncDate string `json:"lastMasterDataSyncDate"`
	LastDataExportDate     string `json:"lastDataExportDate"`
	ExportFolderPath       string `json:"exportFolderPath"`
}

// Store reads and writes the preference file. Every Update is written
// through to disk before it returns.
type Store struct {
	mu     sync.RWMutex
	path   string
	values Prefs
}

func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	file, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(file, &s.values); err != nil {
		return nil, err
	}

	if s.values.ExportFolderPath == "" {
		s.values.ExportFolderPath = defaultExportFolder()
	}
	return s, nil
}

func defaultExportFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Downloads", "POPIS")
}

func (s *Store) Get() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

func (s *Store) Update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.values
	fn(&next)

	file, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, file, 0644); err != nil {
		return err
	}
	s.values = next
	return nil
}
