// Package scanerr defines the typed errors returned at the service boundary.
// Every failure a caller can react to carries a stable code plus a short
// title and a human-readable message.
package scanerr

import "fmt"

const (
	CodeInvalidFileName   = "INVALID_FILE_NAME"
	CodeStoreCodeMismatch = "STORE_CODE_MISMATCH"
	CodeUnreadableFile    = "UNREADABLE_FILE"
	CodeInvalidPayload    = "INVALID_PAYLOAD"
	CodeEmptyMasterData   = "EMPTY_MASTER_DATA"
	CodeEmptyDamageData   = "EMPTY_DAMAGE_DATA"
	CodeItemNotFound      = "ITEM_NOT_FOUND"
	CodeMasterNotFound    = "MASTER_NOT_FOUND"
	CodeListNotFound      = "LIST_NOT_FOUND"
	CodeAlreadyVoided     = "ALREADY_VOIDED"
	CodeLedgerNotEmpty    = "LEDGER_NOT_EMPTY"
	CodeNoData            = "NO_DATA"
	CodeExportFailed      = "EXPORT_FAILED"
	CodeStorage           = "STORAGE_ERROR"
)

type Error struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, title, message string) *Error {
	return &Error{Code: code, Title: title, Message: message}
}

func Newf(code, title, format string, args ...any) *Error {
	return &Error{Code: code, Title: title, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps an unexpected database failure. The wrapped error text is
// kept in the message for the log, not for display.
func Storage(err error) *Error {
	return &Error{Code: CodeStorage, Title: "Storage error", Message: err.Error()}
}
