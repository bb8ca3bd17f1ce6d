package export

import (
	"net/http"

	"popis/httpx"
	"popis/scanerr"
)

func ExportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			res  *Result
			serr *scanerr.Error
			done = make(chan struct{})
		)
		svc.Export(func(r *Result, e *scanerr.Error) {
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
