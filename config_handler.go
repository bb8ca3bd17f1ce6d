package main

import (
	"encoding/json"
	"net/http"

	"popis/httpx"
	"popis/prefs"
)

func GetConfigHandler(store *prefs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, store.Get())
	}
}

// UpdateConfigHandler changes the freely editable preferences. The store
// code is deliberately not among them; changing it wipes the catalog and
// goes through /api/config/store_code.
func UpdateConfigHandler(store *prefs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DeviceName       *string `json:"deviceName"`
			ExportFolderPath *string `json:"exportFolderPath"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		err := store.Update(func(p *prefs.Prefs) {
			if req.DeviceName != nil {
				p.DeviceName = *req.DeviceName
			}
			if req.ExportFolderPath != nil {
				p.ExportFolderPath = *req.ExportFolderPath
			}
		})
		if err != nil {
			http.Error(w, "failed to save preferences: "+err.Error(), http.StatusInternalServerError)
			return
		}
		httpx.WriteJSON(w, store.Get())
	}
}
