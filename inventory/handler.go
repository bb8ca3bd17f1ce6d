package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"popis/httpx"
	"popis/model"
	"popis/scanerr"
)

func awaitErr(call func(cb func(*scanerr.Error))) *scanerr.Error {
	var (
		serr *scanerr.Error
		done = make(chan struct{})
	)
	call(func(e *scanerr.Error) {
		serr = e
		close(done)
	})
	<-done
	return serr
}

func awaitPreviews(call func(cb func([]model.ProductPreviewItem, *scanerr.Error))) ([]model.ProductPreviewItem, *scanerr.Error) {
	var (
		items []model.ProductPreviewItem
		serr  *scanerr.Error
		done  = make(chan struct{})
	)
	call(func(p []model.ProductPreviewItem, e *scanerr.Error) {
		items, serr = p, e
		close(done)
	})
	<-done
	return items, serr
}

func AddHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Ident == "" || req.InventoryListID == 0 {
			http.Error(w, "ident and inventoryListId are required fields", http.StatusBadRequest)
			return
		}
		var (
			preview *model.ProductPreviewItem
			serr    *scanerr.Error
			done    = make(chan struct{})
		)
		svc.Add(req, func(p *model.ProductPreviewItem, e *scanerr.Error) {
			preview, serr = p, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, preview)
	}
}

func VoidHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int64 `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
			http.Error(w, "id is a required field", http.StatusBadRequest)
			return
		}
		if serr := awaitErr(func(cb func(*scanerr.Error)) { svc.Void(req.ID, cb) }); serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, map[string]int64{"id": req.ID})
	}
}

func UpdateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item model.InventoryItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if item.ID == 0 {
			http.Error(w, "id is a required field", http.StatusBadRequest)
			return
		}
		if serr := awaitErr(func(cb func(*scanerr.Error)) { svc.Update(item, cb) }); serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, item)
	}
}

func ItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/inventory/item/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid inventory item id", http.StatusBadRequest)
			return
		}
		var (
			item *model.InventoryItemDetail
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.GetByID(id, func(i *model.InventoryItemDetail, e *scanerr.Error) {
			item, serr = i, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, item)
	}
}

func RecentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID, err := strconv.ParseInt(r.URL.Query().Get("listId"), 10, 64)
		if err != nil {
			http.Error(w, "listId is a required parameter", http.StatusBadRequest)
			return
		}
		items, serr := awaitPreviews(func(cb func([]model.ProductPreviewItem, *scanerr.Error)) {
			svc.Recent(listID, cb)
		})
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, items)
	}
}

func SearchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			InventoryListID int64                 `json:"inventoryListId"`
			Query           model.QueryMasterItem `json:"query"`
			Page            int                   `json:"page"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		items, serr := awaitPreviews(func(cb func([]model.ProductPreviewItem, *scanerr.Error)) {
			svc.Search(req.InventoryListID, req.Query, req.Page, cb)
		})
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, items)
	}
}

func DeleteAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if serr := awaitErr(svc.DeleteAll); serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, map[string]bool{"deleted": true})
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
