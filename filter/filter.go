// Package filter turns a QueryMasterItem into an explicit SQL predicate
// list. Only fields the caller actually set produce conditions; the
// conditions are ANDed.
package filter

import (
	"strings"

	"popis/model"
)

// PageSize is the fixed page length of every filtered listing.
const PageSize = 30

type Page struct {
	Limit  int
	Offset int
}

// PageN returns the n-th page, zero-based.
func PageN(n int) Page {
	if n < 0 {
		n = 0
	}
	return Page{Limit: PageSize, Offset: n * PageSize}
}

// Conditions builds the WHERE clause fragment and its bind args for q.
// prefix qualifies the catalog columns ("m." in joined queries, "" against
// master_items directly). The returned clause starts with " WHERE " and is
// empty when no field is set.
func Conditions(q model.QueryMasterItem, prefix string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	contains := func(col, val string) {
		if val != "" {
			conds = append(conds, prefix+col+" LIKE ?")
			args = append(args, "%"+val+"%")
		}
	}
	equals := func(col, val string) {
		if val != "" {
			conds = append(conds, prefix+col+" = ?")
			args = append(args, val)
		}
	}

	contains("ident", q.Ident)
	contains("barcode", q.Barcode)
	contains("alt_code_1", q.AltCode1)
	equals("alt_code_2", q.AltCode2)
	contains("sales_program", q.SalesProgram)
	equals("purchase_program", q.PurchaseProgram)
	equals("unit_of_measure", q.UnitOfMeasure)
	contains("name", q.Name)
	if q.Active != nil {
		conds = append(conds, prefix+"active = ?")
		args = append(args, *q.Active)
	}
	if q.Accounting != nil {
		conds = append(conds, prefix+"accounting = ?")
		args = append(args, *q.Accounting)
	}
	if q.Price != 0 {
		conds = append(conds, prefix+"price = ?")
		args = append(args, q.Price)
	}
	contains("name", q.FilterText)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
