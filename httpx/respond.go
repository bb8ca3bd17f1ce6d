// Package httpx maps service results and typed errors onto HTTP responses.
package httpx

import (
	"encoding/json"
	"log"
	"net/http"

	"popis/scanerr"
)

func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}

func statusFor(code string) int {
	switch code {
	case scanerr.CodeInvalidFileName, scanerr.CodeStoreCodeMismatch,
		scanerr.CodeUnreadableFile, scanerr.CodeInvalidPayload,
		scanerr.CodeEmptyMasterData, scanerr.CodeEmptyDamageData:
		return http.StatusBadRequest
	case scanerr.CodeItemNotFound, scanerr.CodeMasterNotFound,
		scanerr.CodeListNotFound, scanerr.CodeNoData:
		return http.StatusNotFound
	case scanerr.CodeAlreadyVoided, scanerr.CodeLedgerNotEmpty:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(w http.ResponseWriter, e *scanerr.Error) {
	status := statusFor(e.Code)
	if status >= http.StatusInternalServerError {
		log.Printf("WARN: %s: %s", e.Code, e.Message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.Printf("WARN: failed to encode error response: %v", err)
	}
}
