package product

import (
	"encoding/json"
	"net/http"
	"strings"

	"popis/httpx"
	"popis/model"
	"popis/scanerr"
)

func awaitMaster(call func(cb func(*model.MasterItem, *scanerr.Error))) (*model.MasterItem, *scanerr.Error) {
	var (
		item *model.MasterItem
		serr *scanerr.Error
		done = make(chan struct{})
	)
	call(func(m *model.MasterItem, e *scanerr.Error) {
		item, serr = m, e
		close(done)
	})
	<-done
	return item, serr
}

func ByBarcodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/api/master/by_barcode/")
		if code == "" {
			http.Error(w, "barcode is required", http.StatusBadRequest)
			return
		}
		var (
			match *ScanMatch
			serr  *scanerr.Error
			done  = make(chan struct{})
		)
		svc.ResolveBarcode(code, func(m *ScanMatch, e *scanerr.Error) {
			match, serr = m, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, match)
	}
}

func ByIdentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := strings.TrimPrefix(r.URL.Path, "/api/master/by_ident/")
		if ident == "" {
			http.Error(w, "ident is required", http.StatusBadRequest)
			return
		}
		item, serr := awaitMaster(func(cb func(*model.MasterItem, *scanerr.Error)) {
			svc.GetByIdent(ident, cb)
		})
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, item)
	}
}

func ByAltIDHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alt := strings.TrimPrefix(r.URL.Path, "/api/master/by_alt/")
		if alt == "" {
			http.Error(w, "alternative code is required", http.StatusBadRequest)
			return
		}
		item, serr := awaitMaster(func(cb func(*model.MasterItem, *scanerr.Error)) {
			svc.GetByAltID(alt, cb)
		})
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, item)
	}
}

func UnitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			units []string
			serr  *scanerr.Error
			done  = make(chan struct{})
		)
		svc.UnitsOfMeasure(func(u []string, e *scanerr.Error) {
			units, serr = u, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, units)
	}
}

func DamageInfoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []model.DamageInfo
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.DamageInfoList(func(l []model.DamageInfo, e *scanerr.Error) {
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

func DamageDescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/api/master/damage_desc/")
		if code == "" {
			http.Error(w, "damage code is required", http.StatusBadRequest)
			return
		}
		var (
			desc *string
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.DamageDescription(code, func(d *string, e *scanerr.Error) {
			desc, serr = d, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, map[string]*string{"description": desc})
	}
}

// SearchHandler runs a filtered catalog query. The page is zero-based.
func SearchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query model.QueryMasterItem `json:"query"`
			Page  int                   `json:"page"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		var (
			items []model.MasterItem
			serr  *scanerr.Error
			done  = make(chan struct{})
		)
		svc.Search(req.Query, req.Page, func(m []model.MasterItem, e *scanerr.Error) {
			items, serr = m, e
			close(done)
		})
		<-done
		if serr != nil {
			httpx.WriteError(w, serr)
			return
		}
		httpx.WriteJSON(w, items)
	}
}
