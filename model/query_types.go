package model

// QueryMasterItem describes a catalog filter. Empty strings mean the field
// is not filtered; Active and Accounting are pointers so that "no value" and
// "filter on 0" stay distinct; Price 0 means no price filter.
type QueryMasterItem struct {
	Ident           string  `json:"ident"`
	Barcode         string  `json:"barcode"`
	AltCode1        string  `json:"altCode1"`
	AltCode2        string  `json:"altCode2"`
	SalesProgram    string  `json:"salesProgram"`
	PurchaseProgram string  `json:"purchaseProgram"`
	UnitOfMeasure   string  `json:"unitOfMeasure"`
	Name            string  `json:"name"`
	Active          *int    `json:"active"`
	Accounting      *int    `json:"accounting"`
	Price           float64 `json:"price"`
	FilterText      string  `json:"filterText"`
}

// NoFilterQuery returns the sentinel query that browsing screens start from.
func NoFilterQuery() QueryMasterItem {
	one := 1
	return QueryMasterItem{Active: &one, Accounting: &one}
}

// IsNoFilterApplied reports whether the query is exactly the browsing
// default: every string empty, active and accounting both 1, price 0.
// Any deviation, including clearing active or accounting, counts as a
// filter.
func (q QueryMasterItem) IsNoFilterApplied() bool {
	return q.Ident == "" && q.Barcode == "" && q.AltCode1 == "" && q.AltCode2 == "" &&
		q.SalesProgram == "" && q.PurchaseProgram == "" && q.UnitOfMeasure == "" &&
		q.Name == "" &&
		q.Active != nil && *q.Active == 1 &&
		q.Accounting != nil && *q.Accounting == 1 &&
		q.Price == 0 && q.FilterText == ""
}
