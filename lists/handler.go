package lists

import (
	"encoding/json"
	"net/http"

	"popis/httpx"
	"popis/model"
	"popis/scanerr"
)

func AllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			all  []model.InventoryListWithCount
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.All(func(l []model.InventoryListWithCount, e *scanerr.Error) {
			all, serr = l, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, all)
	}
}

func CreateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			http.Error(w, "name is a required field", http.StatusBadRequest)
			return
		}
		var (
			list *model.InventoryList
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.Create(req.Name, func(l *model.InventoryList, e *scanerr.Error) {
			list, serr = l, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, list)
	}
}

func SelectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int64 `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
			http.Error(w, "id is a required field", http.StatusBadRequest)
			return
		}
		var (
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.Select(req.ID, func(e *scanerr.Error) {
			serr = e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, map[string]int64{"id": req.ID})
	}
}

func CurrentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list *model.InventoryList
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.Current(func(l *model.InventoryList, e *scanerr.Error) {
			list, serr = l, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, list)
	}
}

func ExistsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			exists bool
			serr   *scanerr.Error
			done   = make(chan struct{})
		)
		svc.Exists(func(b bool, e *scanerr.Error) {
			exists, serr = b, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, map[string]bool{"exists": exists})
	}
}
