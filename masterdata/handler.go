package masterdata

import (
	"encoding/json"
	"net/http"

	"popis/httpx"
	"popis/scanerr"
)

// SyncUploadHandler accepts a multipart upload of one master data file and
// runs the sync pipeline on it.
func SyncUploadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is a required field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		var (
			res  *SyncResult
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.Synchronize(header.Filename, file, func(r *SyncResult, e *scanerr.Error) {
			res, serr = r, e
			close(done)
		})
		<-done

		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, res)
	}
}

// ChangeStoreCodeHandler moves the device to another store, wiping the
// catalog first.
func ChangeStoreCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StoreCode string `json:"storeCode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StoreCode == "" {
			http.Error(w, "storeCode is a required field", http.StatusBadRequest)
			return
		}

		var (
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.ChangeStoreCode(req.StoreCode, func(e *scanerr.Error) {
			serr = e
			close(done)
		})
		<-done

		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, map[string]string{"storeCode": req.StoreCode})
	}
}
