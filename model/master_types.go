package model

// MasterItem is one row of the master catalog. The json tags are the short
// field codes used by the ERP export files (MAT*.json).
type MasterItem struct {
	Ident           string  `db:"ident" json:"ident" validate:"required"`
	StoreCode       string  `db:"store_code" json:"sifoj"`
	ImportDate      string  `db:"import_date" json:"datum"`
	Barcode         string  `db:"barcode" json:"barkod"`
	AltCode1        string  `db:"alt_code_1" json:"alt1"`
	AltCode2        string  `db:"alt_code_2" json:"alt2"`
	SalesProgram    string  `db:"sales_program" json:"prodpr"`
	PurchaseProgram string  `db:"purchase_program" json:"nabpr"`
	UnitOfMeasure   string  `db:"unit_of_measure" json:"jm"`
	DecimalPlaces   int     `db:"decimal_places" json:"brdec"`
	Name            string  `db:"name" json:"nazart"`
	MaxCountQty     float64 `db:"max_count_qty" json:"maxkol"`
	Active          int     `db:"active" json:"aktivan"`
	Accounting      int     `db:"accounting" json:"knjg"`
	Price           float64 `db:"price" json:"cena"`
	QuantityErp     float64 `db:"quantity_erp" json:"kolerp"`
}

// DamageInfo is a damage reason code with its display description.
type DamageInfo struct {
	Code        string `db:"code" json:"sifra" validate:"required"`
	Description string `db:"description" json:"naziv"`
}

// ProductsInfo is the root object of a master data file.
type ProductsInfo struct {
	MasterItems []MasterItem `json:"maticni" validate:"dive"`
	DamageInfo  []DamageInfo `json:"ostecenja" validate:"dive"`
}
